package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"github.com/wkalt/tileland/cli/client"
	"github.com/wkalt/tileland/cli/util"
	"github.com/wkalt/tileland/spiral"
)

const prompt = "tileland # "

var errUsage = errors.New("usage")

type shell struct {
	serverURL string
	sharedKey string
	account   string
	client    *client.Client
}

func newShell(serverURL, sharedKey, account string) *shell {
	return &shell{
		serverURL: serverURL,
		sharedKey: sharedKey,
		account:   account,
		client:    client.New(serverURL, sharedKey, account),
	}
}

func (s *shell) useAccount(account string) {
	s.account = account
	s.client = client.New(s.serverURL, s.sharedKey, account)
}

// exec runs one line of shell input.
func (s *shell) exec(ctx context.Context, w io.Writer, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	command, args := fields[0], fields[1:]
	switch command {
	case "help", "\\h":
		topic := ""
		if len(args) > 0 {
			topic = args[0]
		}
		text, ok := help[topic]
		if !ok {
			return fmt.Errorf("no help for %q", topic)
		}
		fmt.Fprintln(w, text)
	case "encode":
		if len(args) != 2 {
			return fmt.Errorf("%w: encode X Y", errUsage)
		}
		id, err := encode(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, id)
	case "decode":
		if len(args) != 1 {
			return fmt.Errorf("%w: decode ID", errUsage)
		}
		c, err := spiral.DecodeString(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, c.X, c.Y)
	case "area":
		if len(args) != 3 {
			return fmt.Errorf("%w: area ID WIDTH HEIGHT", errUsage)
		}
		ids, err := enumerate(args[0], args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, strings.Join(ids, " "))
	case "as":
		if len(args) != 1 {
			return fmt.Errorf("%w: as ACCOUNT", errUsage)
		}
		s.useAccount(args[0])
	case "whoami":
		fmt.Fprintln(w, s.account)
	case "mint":
		if len(args) != 1 && len(args) != 3 {
			return fmt.Errorf("%w: mint ID [WIDTH HEIGHT]", errUsage)
		}
		width, height := uint8(1), uint8(1)
		if len(args) == 3 {
			var err error
			if width, err = parseExtent(args[1]); err != nil {
				return err
			}
			if height, err = parseExtent(args[2]); err != nil {
				return err
			}
		}
		ids, err := s.client.Mint(ctx, args[0], width, height, s.account)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "minted %s\n", strings.Join(ids, " "))
	case "merge":
		if len(args) != 3 {
			return fmt.Errorf("%w: merge ID WIDTH HEIGHT", errUsage)
		}
		width, err := parseExtent(args[1])
		if err != nil {
			return err
		}
		height, err := parseExtent(args[2])
		if err != nil {
			return err
		}
		if err := s.client.Merge(ctx, args[0], width, height); err != nil {
			return err
		}
		fmt.Fprintln(w, "merged")
	case "transfer":
		if len(args) != 2 {
			return fmt.Errorf("%w: transfer ID RECEIVER", errUsage)
		}
		if err := s.client.Transfer(ctx, args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(w, "transferred")
	case "token":
		if len(args) != 1 {
			return fmt.Errorf("%w: token ID", errUsage)
		}
		info, err := s.client.Token(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s owner=%s size=%dx%d", spiral.FormatID(info.ID), info.Owner, info.Width, info.Height)
		if info.CoveredBy != "" {
			fmt.Fprintf(w, " covered-by=%s", info.CoveredBy)
		}
		fmt.Fprintln(w)
	case "uncovered":
		tiles, err := s.client.Uncovered(ctx)
		if err != nil {
			return err
		}
		printTiles(w, tiles)
	case "map":
		radius := int64(8)
		if len(args) == 1 {
			var err error
			if radius, err = strconv.ParseInt(args[0], 10, 32); err != nil {
				return fmt.Errorf("invalid radius %q", args[0])
			}
		}
		tiles, err := s.client.Uncovered(ctx)
		if err != nil {
			return err
		}
		return util.RenderMap(w, tiles, int32(radius))
	default:
		return fmt.Errorf("unrecognized command: %s", command)
	}
	return nil
}

func runShell(s *shell) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     "/tmp/tileland-history.tmp",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()
	l.CaptureExitSignal()
	log.SetOutput(l.Stderr())
	fmt.Println(`Type "help" for help.`)

	ctx := context.Background()
	for {
		line, err := l.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			return nil
		}
		if err := s.exec(ctx, l.Stdout(), line); err != nil {
			fmt.Fprintln(l.Stdout(), "ERROR: "+err.Error())
		}
	}
}

var help = map[string]string{
	"": `The tileland shell talks to a tileland server on behalf of one account.

Commands:
  help [topic]                print help text
  encode X Y                  identifier of the tile at (X, Y)
  decode ID                   coordinate of a tile
  area ID WIDTH HEIGHT        identifiers of a rectangle, columns first
  as ACCOUNT                  act as another account
  whoami                      print the current account
  mint ID [WIDTH HEIGHT]      mint tiles to the current account
  merge ID WIDTH HEIGHT       merge a rectangle into its anchor
  transfer ID RECEIVER        give a tile to another account
  token ID                    show a tile's owner and extents
  uncovered                   list tiles not covered by a merge
  map [RADIUS]                draw the uncovered tiles around the origin

Available help topics are: layout, merge.`,

	"layout": `Tiles are numbered along a square spiral. Ring d holds the 8d+4
cells whose coordinates lie in [-d-1, d] on both axes, with at least one of
them on the boundary. Ring d starts at identifier (2d)^2 and walks the left,
top, right and bottom edges in turn. The first ring is:

   0 (-1,-1)   1 (0,-1)
   3 (-1, 0)   2 (0, 0)`,

	"merge": `A merge fuses a rectangle of tiles into the tile at its top-left
corner, its anchor. The merging account must own the anchor, and every tile in
the rectangle must exist and belong to the anchor's owner. Nothing is written
unless every tile passes. Merged tiles no longer appear in "uncovered"; the
anchor appears with the rectangle's extents.`,
}

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "tileland interactive shell",
	Run: func(*cobra.Command, []string) {
		if err := runShell(newShell(serverURL, sharedKey, account)); err != nil {
			fmt.Println("error running shell:", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
