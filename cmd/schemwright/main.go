// Command schemwright converts a Java-edition schematic file into a stream
// of Bedrock-edition setblock/fill commands.
package main

import (
	"log"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pilecraft/schemwright"
	"github.com/pilecraft/schemwright/translate"
)

var (
	blockTablePath  string
	legacyTablePath string
	verbose         bool
)

func main() {
	root := &cobra.Command{
		Use:   "schemwright <input.schem> <output.mcfunction>",
		Short: "Convert a Java schematic into Bedrock setblock/fill commands",
		Args:  cobra.ExactArgs(2),
		Run:   run,
	}

	root.Flags().StringVar(&blockTablePath, "block-table", "", "path to the Java-to-Bedrock translation table (jsonc)")
	root.Flags().StringVar(&legacyTablePath, "legacy-table", "", "path to the legacy id:data to Java descriptor table (jsonc)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(_ *cobra.Command, args []string) {
	inputPath, outputPath := args[0], args[1]

	level := logLevel()
	logger := schemwright.NewLogger(level)

	opts := []schemwright.Option{schemwright.WithLogger(logger)}

	if blockTablePath != "" {
		f, err := os.Open(blockTablePath)
		if err != nil {
			log.Fatalf("open block table: %v", err)
		}
		tbl, err := translate.LoadTable(f)
		f.Close()
		if err != nil {
			log.Fatalf("load block table: %v", err)
		}
		opts = append(opts, schemwright.WithBlockTable(tbl))
	}

	if legacyTablePath != "" {
		f, err := os.Open(legacyTablePath)
		if err != nil {
			log.Fatalf("open legacy table: %v", err)
		}
		tbl, err := translate.LoadLegacyTable(f)
		f.Close()
		if err != nil {
			log.Fatalf("load legacy table: %v", err)
		}
		opts = append(opts, schemwright.WithLegacyTable(tbl))
	}

	in, err := os.Open(inputPath)
	if err != nil {
		log.Fatalf("open input: %v", err)
	}
	defer in.Close()

	out, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("create output: %v", err)
	}
	defer out.Close()

	if err := schemwright.Convert(in, out, opts...); err != nil {
		log.Fatalf("convert: %v", err)
	}
}

func logLevel() logrus.Level {
	if verbose {
		return logrus.DebugLevel
	}
	return logrus.InfoLevel
}
