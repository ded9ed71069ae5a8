package cli

import (
	"io"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mrz1836/cyclic/internal/cyclic"
	"github.com/mrz1836/cyclic/internal/gf2"
	"github.com/mrz1836/cyclic/internal/metrics"
	"github.com/mrz1836/cyclic/internal/output"
	cyclicerr "github.com/mrz1836/cyclic/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var decodeStrict bool

// encodeCmd encodes a message.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var encodeCmd = &cobra.Command{
	Use:   "encode <message>",
	Short: "Encode a k-bit message into a codeword",
	Long: `Encode a k-bit message into an n-bit codeword by multiplying it with
the generator polynomial.

The code comes from --profile, or from the configured default, with --n,
--k and --generator overriding single fields.`,
	Example: `  cyclic encode 1010101
  cyclic encode 1011 --profile hamming74
  cyclic encode 1011 --n 7 --k 4 -g 1101 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runEncode,
}

// decodeCmd decodes a received word.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var decodeCmd = &cobra.Command{
	Use:   "decode <received>",
	Short: "Decode a received word, correcting one bit error",
	Long: `Decode an n-bit received word. A nonzero syndrome that matches a
single-bit error is corrected; any other nonzero syndrome is reported as
uncorrectable and the word is returned unchanged.

With --strict an uncorrectable word is an error (exit code 2).`,
	Example: `  cyclic decode 110111111100101
  cyclic decode 1111011 --profile hamming74
  cyclic decode 110111111100101 --strict -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	encodeCmd.GroupID = "code"
	decodeCmd.GroupID = "code"
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)

	addCodeFlags(encodeCmd)
	addCodeFlags(decodeCmd)
	decodeCmd.Flags().BoolVar(&decodeStrict, "strict", false, "fail when the word cannot be corrected")
}

// encodeResult is the JSON shape of an encode.
type encodeResult struct {
	Code     string   `json:"code"`
	Message  gf2.Bits `json:"message"`
	Codeword gf2.Bits `json:"codeword"`
}

// decodeResult is the JSON shape of a decode.
type decodeResult struct {
	Code     string   `json:"code"`
	Received gf2.Bits `json:"received"`
	cyclic.Result
}

func runEncode(cmd *cobra.Command, args []string) error {
	message, err := gf2.ParseBits(args[0])
	if err != nil {
		return err
	}
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}

	codeword, err := code.Encode(message)
	if err != nil {
		return err
	}
	metrics.Global.RecordEncode()

	result := encodeResult{
		Code:     code.Params().String(),
		Message:  message,
		Codeword: codeword,
	}
	return emit(cmd, result, func(w io.Writer) error {
		outln(w, codeword.String())
		return nil
	})
}

func runDecode(cmd *cobra.Command, args []string) error {
	received, err := gf2.ParseBits(args[0])
	if err != nil {
		return err
	}
	code, err := loadCode(cmd)
	if err != nil {
		return err
	}

	res, err := code.Decode(received)
	metrics.Global.RecordDecode(res.Status.String(), err)
	if err != nil {
		return err
	}
	logger.DebugAttrs("decoded",
		slog.String("code", code.Params().String()),
		slog.String("status", res.Status.String()),
		slog.Int("position", res.Position),
	)

	result := decodeResult{
		Code:     code.Params().String(),
		Received: received,
		Result:   res,
	}
	if err := emit(cmd, result, func(w io.Writer) error {
		displayDecodeText(w, res, cmdCtx.Palette)
		return nil
	}); err != nil {
		return err
	}

	if decodeStrict && res.Status == cyclic.StatusUncorrectable {
		return cyclicerr.WithDetails(cyclicerr.ErrUncorrectable, map[string]string{
			"syndrome": res.Syndrome.String(),
			"length":   strconv.Itoa(len(received)),
		})
	}
	return nil
}

func displayDecodeText(w io.Writer, res cyclic.Result, pal *output.Palette) {
	displayStatus(w, res, pal)
	out(w, "%s %s\n", pal.Accent("syndrome:"), res.Syndrome)
	out(w, "%s %s\n", pal.Accent("codeword:"), pal.Highlight(res.Codeword.String(), res.Position))
	out(w, "%s %s\n", pal.Accent("message: "), res.Message)
}
