package cli

import (
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/gf2"
	"github.com/mrz1836/cyclic/internal/metrics"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

// The fixed demo scenario: the (15,7) BCH code with g = 1 + x + x^2 + x^4 +
// x^8 carrying 1010101, corrupted at position 9.
const (
	demoN         = 15
	demoK         = 7
	demoGenerator = "111010001"
	demoMessage   = "1010101"
	demoFlip      = 9
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var demoFlipAt int

// demoCmd runs the fixed encode, corrupt and decode scenario.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the (15,7) encode and correct demo",
	Long: `Encode the message 1010101 with the (15,7) code generated by
g(x) = 1 + x + x^2 + x^4 + x^8, flip one bit of the codeword and decode it.

The flipped bit is highlighted in the received word. Use --flip to pick
another position, or --flip -1 to send the codeword unchanged.`,
	Example: `  cyclic demo
  cyclic demo --flip 3
  cyclic demo -o json`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	demoCmd.GroupID = "code"
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().IntVar(&demoFlipAt, "flip", demoFlip, "bit position to corrupt (-1 for none)")
}

// demoResult is the JSON shape of a demo run.
type demoResult struct {
	Code     string        `json:"code"`
	Message  gf2.Bits      `json:"message"`
	Codeword gf2.Bits      `json:"codeword"`
	Flipped  int           `json:"flipped"`
	Received gf2.Bits      `json:"received"`
	Result   cyclic.Result `json:"result"`
}

func runDemo(cmd *cobra.Command, _ []string) error {
	if demoFlipAt < -1 || demoFlipAt >= demoN {
		return cyclicerr.WithDetails(cyclicerr.ErrInvalidInput, map[string]string{
			"flip":  strconv.Itoa(demoFlipAt),
			"valid": "-1 to " + strconv.Itoa(demoN-1),
		})
	}

	p, err := cyclic.NewParams(demoN, demoK, gf2.MustParseBits(demoGenerator))
	if err != nil {
		return err
	}
	code, err := buildCode(p, false)
	if err != nil {
		return err
	}

	message := gf2.MustParseBits(demoMessage)
	codeword, err := code.Encode(message)
	if err != nil {
		return err
	}
	metrics.Global.RecordEncode()

	received := codeword.Clone()
	if demoFlipAt >= 0 {
		received[demoFlipAt] ^= 1
	}

	res, err := code.Decode(received)
	metrics.Global.RecordDecode(res.Status.String(), err)
	if err != nil {
		return err
	}
	logger.Debug("demo decode: %s at %d", res.Status, res.Position)

	result := demoResult{
		Code:     p.String(),
		Message:  message,
		Codeword: codeword,
		Flipped:  demoFlipAt,
		Received: received,
		Result:   res,
	}

	return emit(cmd, result, func(w io.Writer) error {
		displayDemoText(w, result, cmdCtx.Palette)
		return nil
	})
}

func displayDemoText(w io.Writer, r demoResult, pal *output.Palette) {
	out(w, "%s %s\n", pal.Accent("code:    "), r.Code)
	out(w, "%s %s\n", pal.Accent("message: "), r.Message)
	out(w, "%s %s\n", pal.Accent("codeword:"), r.Codeword)
	out(w, "%s %s\n", pal.Accent("received:"), pal.Highlight(r.Received.String(), r.Flipped))
	out(w, "%s %s\n", pal.Accent("syndrome:"), r.Result.Syndrome)
	displayStatus(w, r.Result, pal)
	out(w, "%s %s\n", pal.Accent("decoded: "), r.Result.Message)

	if r.Result.Message.Equal(r.Message) {
		pal.Success(w, "message recovered")
	} else {
		pal.Warn(w, "decoded message differs from the original")
	}
}

// displayStatus writes the status line of a decode.
func displayStatus(w io.Writer, res cyclic.Result, pal *output.Palette) {
	status := pal.Status(res.Status.String())
	if res.Status == cyclic.StatusCorrected {
		out(w, "%s %s (position %d)\n", pal.Accent("status:  "), status, res.Position)
		return
	}
	out(w, "%s %s\n", pal.Accent("status:  "), status)
}
