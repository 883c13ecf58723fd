package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mdt-route/backend/internal/decoder"
	"github.com/spf13/cobra"
)

var decodeCmd = &cobra.Command{
	Use:   "decode [export-string]",
	Short: "Decode a route export string into JSON",
	Long: "Decode a route export string into JSON. The string is read from the argument, " +
		"from --in, or from stdin. With --raw the deserialized value is printed without route extraction.",
	Args: cobra.MaximumNArgs(1),
	RunE: runDecode,
}

var (
	decodeInputFile  string
	decodeOutputFile string
	decodeRaw        bool
	decodeText       bool
)

func init() {
	decodeCmd.Flags().StringVarP(&decodeInputFile, "in", "i", "", "Path to a file holding the export string")
	decodeCmd.Flags().StringVarP(&decodeOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	decodeCmd.Flags().BoolVar(&decodeRaw, "raw", false, "Print the deserialized value instead of the resolved route")
	decodeCmd.Flags().BoolVar(&decodeText, "text", false, "Print the decompressed value-format text")

	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	input, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	geoPath, metaPath := dataPaths()
	geo, meta, err := decoder.LoadDatabases(geoPath, metaPath)
	if err != nil {
		return err
	}
	dec, err := decoder.New(geo, meta, decoder.Options{})
	if err != nil {
		return err
	}

	var out any
	switch {
	case decodeText:
		text, err := dec.Text(input)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), []byte(text+"\n"))
	case decodeRaw:
		v, err := dec.DecodeValue(input)
		if err != nil {
			return err
		}
		out = v.Interface()
	default:
		result, err := dec.Decode(input)
		if err != nil {
			return err
		}
		out = result
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return writeOutput(cmd.OutOrStdout(), append(data, '\n'))
}

func readInput(stdin io.Reader, args []string) (string, error) {
	switch {
	case len(args) == 1 && decodeInputFile != "":
		return "", fmt.Errorf("cannot use an argument together with --in")
	case len(args) == 1:
		return args[0], nil
	case decodeInputFile != "":
		data, err := os.ReadFile(decodeInputFile)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("no export string given (pass it as an argument, with --in, or on stdin)")
	}
	return string(data), nil
}

func writeOutput(stdout io.Writer, data []byte) error {
	if decodeOutputFile == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(decodeOutputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %s\n", decodeOutputFile)
	return nil
}
