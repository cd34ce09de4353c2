package player

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/greenfelt/holdemsync/internal/entity"
	"github.com/greenfelt/holdemsync/internal/turn"
)

// ConsoleSource - interactive prompt over a reader/writer pair, normally
// stdin/stdout. A single long-lived goroutine owns the scanner and feeds
// lines into a channel; Choose only reads from that channel, so overlapping
// or superseded prompts never touch the scanner concurrently. A blank or
// invalid amount entry is treated as 0, never as an error; an action type
// outside the offered list re-prompts.
type ConsoleSource struct {
	in    io.Reader
	out   io.Writer
	lines chan string

	once    sync.Once
	readErr error
}

func NewConsoleSource(in io.Reader, out io.Writer) *ConsoleSource {
	return &ConsoleSource{
		in:    in,
		out:   out,
		lines: make(chan string),
	}
}

// startReader - the one goroutine allowed to read the input. The channel is
// closed when the input ends, which Choose reports as ErrInputClosed.
func (that *ConsoleSource) startReader() {
	that.once.Do(func() {
		go func() {
			defer close(that.lines)

			scanner := bufio.NewScanner(that.in)
			for scanner.Scan() {
				that.lines <- scanner.Text()
			}
			that.readErr = scanner.Err()
		}()
	})
}

func (that *ConsoleSource) Choose(ctx context.Context, offers []turn.Offer, amountToCall int) (Choice, error) {
	if len(offers) == 0 {
		return Choice{}, ErrNoOffers
	}

	that.startReader()

	fmt.Fprintln(that.out, promptLine(offers, amountToCall))

	for {
		fmt.Fprint(that.out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return Choice{}, ctx.Err()

		case text, ok := <-that.lines:
			if !ok {
				if that.readErr != nil {
					return Choice{}, fmt.Errorf("failed to read input: %w", that.readErr)
				}
				return Choice{}, ErrInputClosed
			}
			line = text
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		actionType, err := entity.ParseActionType(strings.ToLower(fields[0]))
		if err != nil || !offered(offers, actionType) {
			fmt.Fprintf(that.out, "choose one of: %s\n", offerNames(offers))
			continue
		}

		amount := 0
		if len(fields) > 1 {
			// garbage stays 0 on purpose
			amount, _ = strconv.Atoi(fields[1])
		}

		return Choice{Type: actionType, Amount: amount}, nil
	}
}

func promptLine(offers []turn.Offer, amountToCall int) string {
	var parts []string
	for _, offer := range offers {
		switch offer.Type {
		case entity.ActionCall:
			parts = append(parts, fmt.Sprintf("call (%d)", offer.CallCost))
		case entity.ActionBet:
			parts = append(parts, fmt.Sprintf("bet <%d-%d>", offer.Bet.Min, offer.Bet.Max))
		case entity.ActionRaise:
			parts = append(parts, fmt.Sprintf("raise <to %d-%d>", offer.Raise.MinTotalBet, offer.Raise.MaxTotalBet))
		default:
			parts = append(parts, offer.Type.String())
		}
	}

	line := "Your turn. Options: " + strings.Join(parts, ", ")
	if amountToCall > 0 {
		line += fmt.Sprintf(" [%d to call]", amountToCall)
	}

	return line
}

func offered(offers []turn.Offer, actionType entity.ActionType) bool {
	for _, offer := range offers {
		if offer.Type == actionType {
			return true
		}
	}

	return false
}

func offerNames(offers []turn.Offer) string {
	names := make([]string, 0, len(offers))
	for _, offer := range offers {
		names = append(names, offer.Type.String())
	}

	return strings.Join(names, ", ")
}
