// Command typewriter previews the headline animation in a terminal.
//
//	typewriter "I write Go" "I build things" --typing-speed 60
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/livetext"
	"github.com/Zachkp/portfolio/internal/typeanim"
)

const previewTarget = "#preview"

type options struct {
	typingSpeed     int
	eraseSpeed      int
	waitBeforeErase int
	waitBeforeNext  int
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	defaults := typeanim.DefaultTimings()
	opts := options{
		typingSpeed:     int(defaults.TypingSpeed.Milliseconds()),
		eraseSpeed:      int(defaults.EraseSpeed.Milliseconds()),
		waitBeforeErase: int(defaults.WaitBeforeErase.Milliseconds()),
		waitBeforeNext:  int(defaults.WaitBeforeNext.Milliseconds()),
	}

	cmd := &cobra.Command{
		Use:   "typewriter [phrase...]",
		Short: "Preview the typing headline in the terminal",
		Long: `Types each phrase one character at a time, pauses, erases it and moves on
to the next one, looping until you quit. Without arguments the site's
default phrases are used.

Keys: space pauses/resumes, q quits.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			phrases := args
			if len(phrases) == 0 {
				phrases = config.DefaultPhrases
			}
			feed := livetext.NewFeed()
			anim, err := newPreviewAnimator(feed, phrases, opts)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			m := newModel(anim, feed.Subscribe(ctx))

			if err := anim.Start(); err != nil {
				return err
			}
			defer anim.Stop()

			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("running preview: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.typingSpeed, "typing-speed", opts.typingSpeed, "milliseconds per typed character")
	cmd.Flags().IntVar(&opts.eraseSpeed, "erase-speed", opts.eraseSpeed, "milliseconds per erased character")
	cmd.Flags().IntVar(&opts.waitBeforeErase, "wait-before-erase", opts.waitBeforeErase, "milliseconds to show a finished phrase")
	cmd.Flags().IntVar(&opts.waitBeforeNext, "wait-before-next", opts.waitBeforeNext, "milliseconds to wait before the next phrase")
	return cmd
}

func newPreviewAnimator(surface typeanim.Surface, phrases []string, opts options, extra ...typeanim.Option) (*typeanim.Animator, error) {
	doc := typeanim.NewDocument()
	doc.Register(previewTarget, surface)

	anim := typeanim.New(append([]typeanim.Option{typeanim.WithResolver(doc.Query)}, extra...)...)
	if err := anim.SetPhrases(phrases); err != nil {
		return nil, err
	}
	if err := anim.SetTargetSelector(previewTarget); err != nil {
		return nil, err
	}
	err := anim.SetTimings(typeanim.Timings{
		TypingSpeed:     ms(opts.typingSpeed),
		EraseSpeed:      ms(opts.eraseSpeed),
		WaitBeforeErase: ms(opts.waitBeforeErase),
		WaitBeforeNext:  ms(opts.waitBeforeNext),
	})
	if err != nil {
		return nil, err
	}
	return anim, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
