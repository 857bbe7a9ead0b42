package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cardveil/holdem/cmd/cardveil/shared"
	"github.com/cardveil/holdem/internal/client"
	"github.com/cardveil/holdem/internal/deck"
	"github.com/cardveil/holdem/internal/protocol"
)

// ClientCmd joins a table and plays interactively on stdin.
type ClientCmd struct {
	URL      string `default:"ws://localhost:8080/ws?table=main" help:"Server websocket URL"`
	Name     string `required:"" help:"Player name"`
	Start    bool   `help:"Request a hand start after joining"`
	LogLevel string `default:"info" help:"Log level"`
}

func (c *ClientCmd) Run() error {
	logger := shared.SetupLogger(c.LogLevel)

	cl, err := client.Dial(c.URL, c.Name, logger)
	if err != nil {
		return err
	}
	defer cl.Close()

	if c.Start {
		if err := cl.RequestStart(); err != nil {
			return err
		}
	}

	stdin := bufio.NewScanner(os.Stdin)
	agent := client.AgentFunc(func(req protocol.ActionRequest, hole [2]deck.Card, board []string) (string, uint64) {
		fmt.Printf("hole: %s %s  board: %s  pot: %d  to call: %d\n",
			hole[0], hole[1], strings.Join(board, " "), req.Pot, req.ToCall)
		fmt.Printf("actions: %s\n> ", strings.Join(req.ValidActions, " "))
		for stdin.Scan() {
			fields := strings.Fields(stdin.Text())
			if len(fields) == 0 {
				fmt.Print("> ")
				continue
			}
			action := fields[0]
			var amount uint64
			if len(fields) > 1 {
				n, err := strconv.ParseUint(fields[1], 10, 64)
				if err != nil {
					fmt.Printf("bad amount %q\n> ", fields[1])
					continue
				}
				amount = n
			}
			return action, amount
		}
		return "fold", 0
	})

	go func() {
		for result := range cl.Results {
			fmt.Printf("hand %s: %s\n", result.HandID, result.Outcome)
		}
	}()

	return cl.Run(agent)
}
