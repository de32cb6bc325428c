package net

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
)

// Client connects to a game server and provides a terminal REPL.
type Client struct {
	conn io.ReadWriter
	in   *bufio.Reader
	out  io.Writer
}

// NewClient wraps an established connection.
func NewClient(conn io.ReadWriter, in io.Reader, out io.Writer) *Client {
	return &Client{conn: conn, in: bufio.NewReader(in), out: out}
}

// Connect connects to a server, announces the player name, and runs the REPL.
func Connect(ctx context.Context, addr, name string, in io.Reader, out io.Writer) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	// Send join message with the player name
	if err := json.NewEncoder(conn).Encode(ClientMessage{Type: MsgJoin, Name: name}); err != nil {
		return fmt.Errorf("send join: %w", err)
	}

	fmt.Fprintln(out, "Connected! Waiting for game to start...")
	return NewClient(conn, in, out).RunREPL(ctx)
}

// RunREPL reads server messages and handles them interactively. It returns
// nil after game_over.
func (c *Client) RunREPL(ctx context.Context) error {
	dec := json.NewDecoder(c.conn)
	enc := json.NewEncoder(c.conn)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		var msg ServerMessage
		if err := dec.Decode(&msg); err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		var reply *ClientMessage
		var err error
		switch msg.Type {
		case MsgNotify:
			c.renderEvent(msg.Event)

		case MsgError:
			fmt.Fprintf(c.out, "! %s\n", msg.Error)

		case MsgPhase:
			c.renderState(msg.State)
			c.renderPhase(msg)
			reply, err = c.readCommand(msg)

		case MsgChooseCards, MsgChooseOrder:
			c.renderPrompt(msg)
			for _, cv := range msg.Candidates {
				fmt.Fprintf(c.out, "  %d) %s (%s, cost %d)\n", cv.Index+1, cv.Name, cv.Types, cv.Cost)
			}
			typ := MsgCards
			if msg.Type == MsgChooseOrder {
				typ = MsgOrder
				fmt.Fprintln(c.out, "  (list the cards in the order to place them; the last ends on top)")
			}
			var idx []int
			idx, err = c.readIndices(len(msg.Candidates), msg.Min, msg.Max)
			reply = &ClientMessage{Type: typ, Indices: idx}

		case MsgChooseTypes:
			c.renderPrompt(msg)
			for _, sv := range msg.Types {
				fmt.Fprintf(c.out, "  %d) %s (cost %d, %d left)\n", sv.Index+1, sv.Name, sv.Cost, sv.Count)
			}
			var idx []int
			idx, err = c.readIndices(len(msg.Types), msg.Min, msg.Max)
			reply = &ClientMessage{Type: MsgTypes, Indices: idx}

		case MsgChooseOptions:
			c.renderPrompt(msg)
			for i, o := range msg.Options {
				fmt.Fprintf(c.out, "  %d) %s\n", i+1, o)
			}
			var idx []int
			idx, err = c.readIndices(len(msg.Options), msg.Min, msg.Max)
			reply = &ClientMessage{Type: MsgOptions, Indices: idx}

		case MsgChooseYesNo:
			if len(msg.Candidates) > 0 {
				names := make([]string, len(msg.Candidates))
				for i, cv := range msg.Candidates {
					names[i] = cv.Name
				}
				fmt.Fprintf(c.out, "\n[%s]", strings.Join(names, ", "))
			}
			fmt.Fprintf(c.out, "\n%s (y/n): ", msg.Prompt)
			var answer bool
			answer, err = c.readYesNo()
			reply = &ClientMessage{Type: MsgYesNo, Answer: answer}

		case MsgGameOver:
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprintln(c.out, "          GAME OVER")
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			fmt.Fprint(c.out, msg.Result)
			fmt.Fprintln(c.out, "═══════════════════════════════════")
			return nil
		}

		if err != nil {
			return err
		}
		if reply != nil {
			if err := enc.Encode(reply); err != nil {
				return fmt.Errorf("send %s: %w", reply.Type, err)
			}
		}
	}
}

func (c *Client) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && (line == "" || !errors.Is(err, io.EOF)) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func (c *Client) renderEvent(ev *EventView) {
	if ev == nil {
		return
	}
	// Format like the TextLogger
	fmt.Fprintf(c.out, "T%-3d %-8s| %s\n", ev.Turn, ev.Phase, ev.Details)
}

func (c *Client) renderState(sv *StateView) {
	if sv == nil {
		return
	}
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, "╔══════════════════════════════════════════════════════")
	for _, o := range sv.Opponents {
		fmt.Fprintf(c.out, "║  P%d %s  Hand: %d  Deck: %d  Discard: %d\n",
			o.Seat, o.Name, o.HandCount, o.DeckCount, o.DiscardCount)
	}
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	fmt.Fprint(c.out, "║  Supply: ")
	for i, s := range sv.Supply {
		if i > 0 && i%6 == 0 {
			fmt.Fprint(c.out, "\n║          ")
		}
		fmt.Fprintf(c.out, "%s $%d (%d)  ", s.Name, s.Cost, s.Count)
	}
	fmt.Fprintln(c.out)
	fmt.Fprintf(c.out, "║  Trash: %d\n", sv.TrashCount)
	fmt.Fprintln(c.out, "║──────────────────────────────────────────────────────")
	you := sv.You
	if len(you.Played) > 0 {
		fmt.Fprintf(c.out, "║  In play: %s\n", strings.Join(you.Played, ", "))
	}
	fmt.Fprintf(c.out, "║  YOU P%d %s  Deck: %d  Discard: %d  Actions: %d  Buys: %d  Money: %d\n",
		you.Seat, you.Name, you.DeckCount, you.DiscardCount, you.Actions, you.Buys, you.Money)
	fmt.Fprintln(c.out, "╚══════════════════════════════════════════════════════")

	turnInfo := fmt.Sprintf("Turn %d | %s", sv.Turn, sv.Phase)
	if sv.IsYourTurn {
		turnInfo += " | Your turn"
	}
	fmt.Fprintln(c.out, turnInfo)
	if len(you.Hand) > 0 {
		fmt.Fprintf(c.out, "Hand: %s\n", strings.Join(you.Hand, ", "))
	}
}

func (c *Client) renderPhase(msg ServerMessage) {
	if len(msg.Playable) > 0 {
		fmt.Fprintln(c.out, "\nPlayable:")
		for _, cv := range msg.Playable {
			fmt.Fprintf(c.out, "  %d) %s\n", cv.Index+1, cv.Name)
		}
	}
	if len(msg.Buyable) > 0 {
		fmt.Fprintln(c.out, "\nBuyable:")
		for _, sv := range msg.Buyable {
			fmt.Fprintf(c.out, "  %d) %s (cost %d, %d left)\n", sv.Index+1, sv.Name, sv.Cost, sv.Count)
		}
	}
	fmt.Fprintln(c.out, "\nCommands: p N [targets], t (play treasures), b N|NAME, e (end phase), h (help)")
}

func (c *Client) renderPrompt(msg ServerMessage) {
	fmt.Fprintf(c.out, "\n%s", msg.Prompt)
	if msg.Source != "" {
		fmt.Fprintf(c.out, " [%s]", msg.Source)
	}
	fmt.Fprintf(c.out, " (select %d", msg.Min)
	if msg.Max != msg.Min {
		fmt.Fprintf(c.out, "-%d", msg.Max)
	}
	fmt.Fprintln(c.out, ")")
}

// readCommand reads phase commands until one parses.
func (c *Client) readCommand(msg ServerMessage) (*ClientMessage, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		cmd, err := ParseCommand(line, msg.Buyable)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return cmd, nil
	}
}

// ParseCommand turns one line of phase input into a client message. Play
// indices are 1-based; targets follow the index separated by commas.
func ParseCommand(line string, buyable []SupplyView) (*ClientMessage, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(verb) {
	case "e", "end":
		return &ClientMessage{Type: MsgEnd}, nil
	case "t", "treasures":
		return &ClientMessage{Type: MsgPlayAll}, nil
	case "p", "play":
		num, targets, _ := strings.Cut(rest, " ")
		n, err := strconv.Atoi(num)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("usage: p N [target, target...]")
		}
		cmd := &ClientMessage{Type: MsgPlay, Index: n - 1}
		for _, t := range strings.Split(targets, ",") {
			if t = strings.TrimSpace(t); t != "" {
				cmd.Targets = append(cmd.Targets, t)
			}
		}
		return cmd, nil
	case "b", "buy":
		if rest == "" {
			return nil, fmt.Errorf("usage: b N|NAME")
		}
		if n, err := strconv.Atoi(rest); err == nil {
			if n < 1 || n > len(buyable) {
				return nil, fmt.Errorf("enter a number between 1 and %d", len(buyable))
			}
			return &ClientMessage{Type: MsgBuy, Card: buyable[n-1].Name}, nil
		}
		return &ClientMessage{Type: MsgBuy, Card: rest}, nil
	case "h", "help", "":
		return nil, fmt.Errorf("p N [targets] plays card N, t plays all treasures, b N|NAME buys, e ends the phase")
	}
	if n, err := strconv.Atoi(verb); err == nil && n >= 1 {
		return &ClientMessage{Type: MsgPlay, Index: n - 1}, nil
	}
	return nil, fmt.Errorf("unknown command %q (h for help)", verb)
}

// readIndices reads 1-based numbers separated by spaces and returns them
// 0-based. An empty line is accepted when min is 0.
func (c *Client) readIndices(count, min, max int) ([]int, error) {
	for {
		fmt.Fprint(c.out, "> ")
		line, err := c.readLine()
		if err != nil {
			return nil, err
		}
		indices, err := ParseIndices(line, count, min, max)
		if err != nil {
			fmt.Fprintln(c.out, err)
			continue
		}
		return indices, nil
	}
}

// ParseIndices parses 1-based numbers and checks their count and range.
func ParseIndices(line string, count, min, max int) ([]int, error) {
	parts := strings.Fields(line)
	if len(parts) < min || len(parts) > max {
		return nil, fmt.Errorf("enter %d-%d numbers separated by spaces", min, max)
	}
	indices := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 || n > count {
			return nil, fmt.Errorf("each number must be between 1 and %d", count)
		}
		indices = append(indices, n-1) // convert to 0-indexed
	}
	return indices, nil
}

func (c *Client) readYesNo() (bool, error) {
	for {
		line, err := c.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprint(c.out, "Enter y or n: ")
		}
	}
}
