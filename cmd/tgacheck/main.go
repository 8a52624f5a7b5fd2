// tgacheck validates Truevision TGA files.
//
// Usage:
//
//	tgacheck [-q|--quiet] [-s|--strict] <filename> [<filename> ...]
//
// Options:
//
//	-q, --quiet   Only output errors. Exit code indicates pass/fail.
//	-s, --strict  Also audit RLE packet structure and flag missing footers.
//	-h, --help    Show this help message.
//	--version     Show version information.
//
// Exit codes:
//
//	0: All files valid
//	1: One or more files invalid
//	2: Error (file not found, etc.)
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mrjoshuak/go-targa/tga"
	"github.com/mrjoshuak/go-targa/tgautil"
)

const version = "1.0.0"

// ValidationIssue represents a single validation problem found in a file.
type ValidationIssue struct {
	Severity string // "error" or "warning"
	Message  string
}

// ValidationResult contains all validation results for a file.
type ValidationResult struct {
	Filename string
	Issues   []ValidationIssue
	Checks   []string // List of checks performed
}

// IsValid returns true if there are no errors (warnings are ok).
func (r *ValidationResult) IsValid() bool {
	for _, issue := range r.Issues {
		if issue.Severity == "error" {
			return false
		}
	}
	return true
}

// HasErrors returns true if there are any error-level issues.
func (r *ValidationResult) HasErrors() bool {
	return !r.IsValid()
}

func (r *ValidationResult) addError(msg string) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "error", Message: msg})
}

func (r *ValidationResult) addWarning(msg string) {
	r.Issues = append(r.Issues, ValidationIssue{Severity: "warning", Message: msg})
}

func main() {
	quiet := false
	strict := false
	files := []string{}

	// Parse command line arguments
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		switch arg {
		case "-q", "--quiet":
			quiet = true
		case "-s", "--strict":
			strict = true
		case "-h", "--help":
			printUsage()
			os.Exit(0)
		case "--version":
			fmt.Printf("tgacheck version %s\n", version)
			fmt.Println("Part of go-targa - Pure Go TGA library")
			fmt.Println("https://github.com/mrjoshuak/go-targa")
			os.Exit(0)
		default:
			if strings.HasPrefix(arg, "-") {
				fmt.Fprintf(os.Stderr, "Unknown option: %s\n", arg)
				printUsage()
				os.Exit(2)
			}
			files = append(files, arg)
		}
	}

	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Error: No input files specified")
		printUsage()
		os.Exit(2)
	}

	validCount := 0
	errorOccurred := false

	for _, filename := range files {
		result, err := validateFile(filename, strict)
		if err != nil {
			if !quiet {
				fmt.Fprintf(os.Stderr, "%s: error: %v\n", filename, err)
			}
			errorOccurred = true
			continue
		}

		if result.IsValid() {
			validCount++
		}

		if !quiet {
			printResult(result)
		} else if result.HasErrors() {
			for _, issue := range result.Issues {
				if issue.Severity == "error" {
					fmt.Fprintf(os.Stderr, "%s: %s\n", filename, issue.Message)
				}
			}
		}
	}

	if len(files) > 1 && !quiet {
		fmt.Printf("\nSummary: %d of %d files valid\n", validCount, len(files))
	}

	if errorOccurred {
		os.Exit(2)
	}
	if validCount < len(files) {
		os.Exit(1)
	}
	os.Exit(0)
}

func printUsage() {
	fmt.Println(`Usage: tgacheck [options] <filename> [<filename> ...]

Validate Truevision TGA files.

Options:
  -q, --quiet    Only output errors. Exit code indicates pass/fail.
  -s, --strict   Also audit RLE packet structure and flag missing footers.
  -h, --help     Show this help message.
  --version      Show version information.

Exit codes:
  0: All files valid
  1: One or more files invalid
  2: Error (file not found, permission denied, etc.)

Examples:
  tgacheck texture.tga                Validate a single file
  tgacheck -q *.tga                   Validate all TGA files silently
  tgacheck -s texture.tga             Validate with strict mode`)
}

func printResult(result *ValidationResult) {
	if result.IsValid() {
		fmt.Printf("%s: OK\n", result.Filename)
	} else {
		fmt.Printf("%s: INVALID\n", result.Filename)
	}
	for _, issue := range result.Issues {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(issue.Severity), issue.Message)
	}
	if len(result.Issues) > 0 {
		fmt.Printf("  Checks performed: %s\n", strings.Join(result.Checks, ", "))
	}
}

// validateFile validates a single TGA file and returns the results.
// Gzip-compressed files are decompressed transparently.
func validateFile(filename string, strict bool) (*ValidationResult, error) {
	result := &ValidationResult{
		Filename: filename,
		Issues:   []ValidationIssue{},
		Checks:   []string{},
	}

	reader, gzipped, err := tgautil.OpenSeekable(filename)
	if err != nil {
		return nil, err
	}

	result.Checks = append(result.Checks, "file size")
	if reader.Size() < tga.HeaderSize {
		result.addError("file too small to hold a TGA header")
		return result, nil
	}

	// 1. Header
	result.Checks = append(result.Checks, "header")
	header, err := tga.ParseHeader(reader)
	if err != nil {
		result.addError(fmt.Sprintf("failed to parse header: %v", err))
		return result, nil
	}
	if err := header.Validate(); err != nil {
		result.addError(err.Error())
		return result, nil
	}

	// 2. Full decode through the real engine, counting output bytes.
	result.Checks = append(result.Checks, "pixel data")
	wantAlpha := header.SamplesPerPixel() == 4
	samples := 3
	if wantAlpha {
		samples = 4
	}
	pix := make([]byte, header.Width*header.Height*samples)
	n, err := tga.DecodePixels(header, reader, pix, wantAlpha)
	if err != nil {
		result.addError(fmt.Sprintf("failed to decode pixel data: %v", err))
		return result, nil
	}
	if n < len(pix) {
		pixelsDone := n / samples
		result.addError(fmt.Sprintf("pixel data truncated: %d of %d pixels decoded",
			pixelsDone, header.Width*header.Height))
	}

	if !strict {
		return result, nil
	}

	// Strict checks below are warnings: the decoder accepts these
	// files, but they are malformed or unusual by the letter of the
	// format.
	if gzipped {
		result.Checks = append(result.Checks, "gzip wrapper")
	}

	result.Checks = append(result.Checks, "footer")
	hasFooter, err := tgautil.HasFooter(reader)
	if err != nil {
		return nil, err
	}
	if !hasFooter {
		result.addWarning("no TRUEVISION-XFILE footer (pre-2.0 file)")
	}

	if header.Compressed() {
		result.Checks = append(result.Checks, "RLE packet structure")
		if _, err := reader.Seek(int64(header.PixelDataOffset()), io.SeekStart); err != nil {
			return nil, err
		}
		stream, err := io.ReadAll(reader)
		if err != nil {
			return nil, err
		}
		if hasFooter && len(stream) >= tgautil.FooterSize {
			stream = stream[:len(stream)-tgautil.FooterSize]
		}
		audit := tga.AuditRLE(stream, header.BytesPerPixel(), header.Width, header.Height)
		if audit.RowCrossings > 0 {
			result.addWarning(fmt.Sprintf("%d RLE packets cross a row boundary", audit.RowCrossings))
		}
		if audit.Pixels > header.Width*header.Height {
			result.addWarning("last RLE packet overruns the image")
		}
		if audit.TrailingBytes > 0 {
			result.addWarning(fmt.Sprintf("%d trailing bytes after pixel data", audit.TrailingBytes))
		}
	}

	return result, nil
}
