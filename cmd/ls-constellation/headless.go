package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-constellation/internal/assist"
	"github.com/litescript/ls-constellation/internal/chart"
	"github.com/litescript/ls-constellation/internal/guestbook"
	"github.com/litescript/ls-constellation/internal/starfield"
	"github.com/litescript/ls-constellation/internal/ui"
	"github.com/litescript/ls-constellation/internal/zodiac"
)

func newSignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sign [date]",
		Short: "Resolve a birthdate (YYYY-MM-DD) to its zodiac sign; today if omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sign := zodiac.SignFor(time.Now())
			if len(args) == 1 {
				var err error
				if sign, err = zodiac.FromBirthdate(args[0]); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  (%s)\n", sign, sign.Symbol(), sign.DateRange())
			return nil
		},
	}
}

func newChartCmd(a *app) *cobra.Command {
	var (
		jsonOut  bool
		sections bool
		width    int
		height   int
	)
	cmd := &cobra.Command{
		Use:   "chart [sign]",
		Short: "Print a constellation; the current sign if omitted",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			id := zodiac.CurrentConstellationID(now)
			if len(args) == 1 {
				sign, ok := zodiac.ParseSign(args[0])
				if !ok {
					return fmt.Errorf("unknown sign %q (one of %s)", args[0], strings.Join(a.catalog.IDs(), ", "))
				}
				id = sign.ConstellationID()
			}
			con, ok := a.catalog.ByID(id)
			if !ok {
				return fmt.Errorf("no constellation %q", id)
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOut:
				if err := chart.NewExport(con, a.observer(), now).WriteJSON(out); err != nil {
					return fmt.Errorf("write JSON: %w", err)
				}
			case sections:
				chart.WriteSectionTable(out, con, a.observer(), now)
			default:
				cfg := chart.DefaultASCIIConfig()
				if width > 0 {
					cfg.Width = width
				}
				if height > 0 {
					cfg.Height = height
				}
				chart.WriteASCII(out, con, cfg)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Export projected positions as JSON")
	cmd.Flags().BoolVar(&sections, "sections", false, "List the clickable stars and their sections")
	cmd.Flags().IntVar(&width, "width", 0, "ASCII chart width in columns")
	cmd.Flags().IntVar(&height, "height", 0, "ASCII chart height in rows")
	return cmd
}

func newStarfieldCmd(a *app) *cobra.Command {
	var duration time.Duration
	cmd := &cobra.Command{
		Use:   "starfield",
		Short: "Run the starfield on the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			host := ui.NewTermHost(stdoutFd(), out, ui.DefaultResizePoll)
			if !host.IsTerminal() {
				a.log.Debug("starfield: stdout is not a terminal, nothing to draw")
				return nil
			}

			ctx := cmd.Context()
			anim := starfield.NewAnimator(host, a.starfieldConfig(), starfield.WithLogger(a.log))
			host.Begin()
			defer host.End()
			if !anim.Start(ctx) {
				return nil
			}
			defer anim.Stop()

			var timeout <-chan time.Time
			if duration > 0 {
				timer := time.NewTimer(duration)
				defer timer.Stop()
				timeout = timer.C
			}
			select {
			case <-ctx.Done():
			case <-timeout:
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&duration, "duration", starfield.ShowerInterval, "How long to run; 0 runs until interrupted")
	return cmd
}

func newAskCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the portfolio assistant a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			conv := assist.NewConversation(a.responder(ctx), a.cfg.Assistant.HistoryLimit)
			answer, err := conv.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}
}

func newGuestbookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guestbook",
		Short: "Read or sign the guestbook",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			book, err := a.openGuestbook(ctx)
			if err != nil {
				return err
			}
			defer book.Close()

			if limit <= 0 {
				limit = a.cfg.Guestbook.Limit
			}
			comments, err := book.List(ctx, limit)
			if err != nil {
				return err
			}
			writeComments(cmd, comments)
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 0, "Maximum comments to show (default from config)")

	var name, message string
	sign := &cobra.Command{
		Use:   "sign",
		Short: "Leave a comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			book, err := a.openGuestbook(ctx)
			if err != nil {
				return err
			}
			defer book.Close()

			c, err := book.Sign(ctx, guestbook.NewComment{Name: name, Message: message})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed as %s (%s)\n", c.Name, c.ID)
			return nil
		},
	}
	sign.Flags().StringVar(&name, "name", "", "Your name")
	sign.Flags().StringVar(&message, "message", "", "Your message")

	cmd.AddCommand(list, sign)
	return cmd
}

func writeComments(cmd *cobra.Command, comments []guestbook.Comment) {
	out := cmd.OutOrStdout()
	if len(comments) == 0 {
		fmt.Fprintln(out, "No comments yet")
		return
	}
	for _, c := range comments {
		fmt.Fprintf(out, "%s  %s: %s\n", c.CreatedAt.Local().Format("2006-01-02 15:04"), c.Name, c.Message)
	}
}
