package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPeekType(t *testing.T) {
	data, err := Marshal(Action{Type: TypeAction, Action: "raise", Amount: 40})
	require.NoError(t, err)

	typ, err := PeekType(data)
	require.NoError(t, err)
	require.Equal(t, TypeAction, typ)

	var msg Action
	require.NoError(t, Unmarshal(data, &msg))
	require.Equal(t, "raise", msg.Action)
	require.Equal(t, uint64(40), msg.Amount)
}

func TestPeekTypeRejectsUntyped(t *testing.T) {
	_, err := PeekType([]byte(`{"foo": 1}`))
	require.Error(t, err)

	_, err = PeekType([]byte(`not json`))
	require.Error(t, err)
}
