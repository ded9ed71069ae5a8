package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/gf2"
	"github.com/mrz1836/cyclic/internal/output"
)

// matrixCmd prints the generator and parity-check matrices.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var matrixCmd = &cobra.Command{
	Use:   "matrix [g|h]",
	Short: "Print the generator and parity-check matrices",
	Long: `Print the k×n generator matrix G, the (n-k)×n parity-check matrix H,
or both.

Row i of G is g(x)·x^i. Column j of H is x^j mod g(x), so H times a word
is the remainder of the word divided by g(x).`,
	Example: `  cyclic matrix
  cyclic matrix g --profile hamming74
  cyclic matrix h -o json`,
	ValidArgs: []string{"g", "h"},
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	RunE:      runMatrix,
}

// syndromesCmd prints the syndrome table.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var syndromesCmd = &cobra.Command{
	Use:   "syndromes",
	Short: "Print the single-bit-error syndrome table",
	Long: `Print the syndrome of every single-bit error and the position it
corrects.

Codes built with --allow-ambiguous may have positions that share a syndrome
or have a zero syndrome; those are listed as collisions and are never
corrected.`,
	Example: `  cyclic syndromes
  cyclic syndromes --profile hamming74
  cyclic syndromes --n 3 --k 2 -g 11 --allow-ambiguous`,
	Args: cobra.NoArgs,
	RunE: runSyndromes,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	matrixCmd.GroupID = "code"
	syndromesCmd.GroupID = "code"
	rootCmd.AddCommand(matrixCmd)
	rootCmd.AddCommand(syndromesCmd)

	addCodeFlags(matrixCmd)
	addCodeFlags(syndromesCmd)
}

// matrixResult is the JSON shape of the matrix command.
type matrixResult struct {
	Code string     `json:"code"`
	G    []gf2.Bits `json:"g,omitempty"`
	H    []gf2.Bits `json:"h,omitempty"`
}

// syndromeResult is the JSON shape of the syndromes command.
type syndromeResult struct {
	Code       string             `json:"code"`
	Width      int                `json:"width"`
	Entries    []cyclic.Entry     `json:"entries"`
	Collisions []cyclic.Collision `json:"collisions,omitempty"`
}

func runMatrix(cmd *cobra.Command, args []string) error {
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}

	which := ""
	if len(args) == 1 {
		which = args[0]
	}

	result := matrixResult{Code: code.Params().String()}
	if which != "h" {
		result.G = code.G().Bits()
	}
	if which != "g" {
		result.H = code.H().Bits()
	}

	return emit(cmd, result, func(w io.Writer) error {
		return displayMatrices(w, result, code.N())
	})
}

// displayMatrices prints each requested matrix with its dimensions.
func displayMatrices(w io.Writer, result matrixResult, n int) error {
	out(w, "%s\n", cmdCtx.Palette.Accent(result.Code))
	for _, m := range []struct {
		name string
		rows []gf2.Bits
	}{{"g", result.G}, {"h", result.H}} {
		if m.rows == nil {
			continue
		}
		outln(w)
		out(w, "%s (%d×%d)\n", strings.ToUpper(m.name), len(m.rows), n)
		if err := renderBits(w, m.name, m.rows); err != nil {
			return err
		}
	}
	return nil
}

func renderBits(w io.Writer, label string, rows []gf2.Bits) error {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.String()
	}
	return output.NewBitTable(label, lines).Render(w)
}

func runSyndromes(cmd *cobra.Command, _ []string) error {
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}
	table := code.Table()

	result := syndromeResult{
		Code:       code.Params().String(),
		Width:      table.Width(),
		Entries:    table.Entries(),
		Collisions: table.Collisions(),
	}

	return emit(cmd, result, func(w io.Writer) error {
		return displaySyndromes(w, result)
	})
}

// displaySyndromes prints the lookup table, then a warning per collision.
func displaySyndromes(w io.Writer, result syndromeResult) error {
	out(w, "%s\n\n", cmdCtx.Palette.Accent(result.Code))
	t := output.NewTable("SYNDROME", "POSITION")
	for _, e := range result.Entries {
		t.AddRow(e.Syndrome.String(), strconv.Itoa(e.Position))
	}
	if err := t.Render(w); err != nil {
		return err
	}

	for _, c := range result.Collisions {
		positions := make([]string, len(c.Positions))
		for i, p := range c.Positions {
			positions[i] = strconv.Itoa(p)
		}
		if c.Syndrome.IsZero() {
			cmdCtx.Palette.Warn(w, "errors at positions %s are undetectable", strings.Join(positions, ","))
			continue
		}
		cmdCtx.Palette.Warn(w, "syndrome %s is shared by positions %s", c.Syndrome, strings.Join(positions, ","))
	}
	return nil
}
