package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/slidedeck/internal/deck"
)

// DeckResult is the JSON payload of create, append and append-batch.
type DeckResult struct {
	Owner   string `json:"owner"`
	Deck    string `json:"deck"`
	Created *bool  `json:"created,omitempty"`
	Length  *int   `json:"length,omitempty"`
}

// SlidesResult is the JSON payload of the slides command.
type SlidesResult struct {
	Owner  string   `json:"owner"`
	Deck   string   `json:"deck"`
	Slides []string `json:"slides"`
	Output string   `json:"output"`
}

// NamesResult is the JSON payload of the decks command.
type NamesResult struct {
	Owner string   `json:"owner"`
	Decks []string `json:"decks"`
}

// CountResult is the JSON payload of count and deck-count.
// Count is null when the owner or deck does not exist.
type CountResult struct {
	Owner string `json:"owner"`
	Deck  string `json:"deck,omitempty"`
	Count *int   `json:"count"`
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create <owner> <deck>",
		Short: "Create a deck for an owner",
		Long: `Create a named deck. The authenticated caller (--as) must be the owner.

Creating a deck that already exists is a no-op and reports created=false.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := rootOpts.requireCaller()
			if err != nil {
				return err
			}
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			created, err := st.CreateDeck(cmd.Context(), caller, args[0], args[1])
			if err != nil {
				return formatter.RegistryError(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(DeckResult{Owner: args[0], Deck: args[1], Created: &created})
			}
			if created {
				return formatter.Success(fmt.Sprintf("created deck %q for %q", args[1], args[0]))
			}
			return formatter.Success(fmt.Sprintf("deck %q already exists for %q", args[1], args[0]))
		},
	}
}

// NewAppendCommand creates the append command.
func NewAppendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append <owner> <deck> <slide>",
		Short: "Append one slide to a deck",
		Args:  usageArgs(cobra.ExactArgs(3)),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := rootOpts.requireCaller()
			if err != nil {
				return err
			}
			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			length, err := st.AppendSlide(cmd.Context(), caller, args[0], args[1], args[2])
			if err != nil {
				return formatter.RegistryError(err)
			}
			return reportLength(rootOpts, formatter, args[0], args[1], length)
		},
	}
}

// AppendBatchOptions holds flags for the append-batch command.
type AppendBatchOptions struct {
	File string
}

// NewAppendBatchCommand creates the append-batch command.
func NewAppendBatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AppendBatchOptions{}

	cmd := &cobra.Command{
		Use:   "append-batch <owner> <deck> [slide...]",
		Short: "Append several slides to a deck atomically",
		Long: `Append slides in order as one all-or-nothing call.

Slides come from the positional arguments followed by the entries of
--file, a YAML list of strings. An empty batch only checks that the
caller owns an existing deck.`,
		Args: usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := rootOpts.requireCaller()
			if err != nil {
				return err
			}

			formatter := rootOpts.formatter(cmd)
			slides := append([]string{}, args[2:]...)
			if opts.File != "" {
				fromFile, err := loadSlideFile(opts.File)
				if err != nil {
					_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
					return &ExitError{Code: ExitCommandError, Message: "failed to load slide file", Err: err, Reported: true}
				}
				slides = append(slides, fromFile...)
			}

			st, err := rootOpts.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rootOpts.logger.Debug("appending batch", "owner", args[0], "deck", args[1], "slides", len(slides))
			length, err := st.AppendSlides(cmd.Context(), caller, args[0], args[1], slides)
			if err != nil {
				return formatter.RegistryError(err)
			}
			return reportLength(rootOpts, formatter, args[0], args[1], length)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "YAML file with a list of slide ids")

	return cmd
}

// loadSlideFile reads a YAML list of slide ids.
func loadSlideFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var slides []string
	if err := yaml.Unmarshal(data, &slides); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return slides, nil
}

func reportLength(rootOpts *RootOptions, formatter *OutputFormatter, owner, name string, length int) error {
	if rootOpts.Format == "json" {
		return formatter.Success(DeckResult{Owner: owner, Deck: name, Length: &length})
	}
	return formatter.Success(fmt.Sprintf("%s/%s: %d slides", owner, name, length))
}

// NewSlidesCommand creates the slides command.
func NewSlidesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "slides <owner> <deck>",
		Short: "Print the slides of a deck",
		Long: `Print a deck's slides as a JSON array in insertion order.

A deck that exists but has no slides prints None.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openReader()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			slides, err := st.ReadSlides(cmd.Context(), args[0], args[1])
			if err != nil {
				return formatter.RegistryError(err)
			}
			rendered, err := deck.RenderSlides(slides)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to render slides", err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(SlidesResult{Owner: args[0], Deck: args[1], Slides: slides, Output: rendered})
			}
			return formatter.Success(rendered)
		},
	}
}

// NewDecksCommand creates the decks command.
func NewDecksCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "decks <owner>",
		Short: "Print an owner's deck names in creation order",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openReader()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			names, err := st.ReadDeckNames(cmd.Context(), args[0])
			if err != nil {
				return formatter.RegistryError(err)
			}

			if rootOpts.Format == "json" {
				return formatter.Success(NamesResult{Owner: args[0], Decks: names})
			}
			rendered, err := deck.RenderNames(names)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to render deck names", err)
			}
			return formatter.Success(rendered)
		},
	}
}

// NewCountCommand creates the count command.
func NewCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "count <owner> <deck>",
		Short: "Print the number of slides in a deck",
		Long: `Print the number of slides in a deck, or None when the owner or
deck does not exist. An absent deck is not an error.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openReader()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			n, ok, err := st.DeckSlideCount(cmd.Context(), args[0], args[1])
			if err != nil {
				return formatter.RegistryError(err)
			}
			return reportCount(rootOpts, formatter, CountResult{Owner: args[0], Deck: args[1]}, n, ok)
		},
	}
}

// NewDeckCountCommand creates the deck-count command.
func NewDeckCountCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "deck-count <owner>",
		Short: "Print the number of decks an owner has",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := rootOpts.openReader()
			if err != nil {
				return err
			}
			defer st.Close()

			formatter := rootOpts.formatter(cmd)
			n, ok, err := st.DeckCount(cmd.Context(), args[0])
			if err != nil {
				return formatter.RegistryError(err)
			}
			return reportCount(rootOpts, formatter, CountResult{Owner: args[0]}, n, ok)
		},
	}
}

func reportCount(rootOpts *RootOptions, formatter *OutputFormatter, res CountResult, n int, ok bool) error {
	if ok {
		res.Count = &n
	}
	if rootOpts.Format == "json" {
		return formatter.Success(res)
	}
	if !ok {
		return formatter.Success(deck.Absent)
	}
	return formatter.Success(n)
}
