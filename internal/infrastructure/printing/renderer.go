package printing

import (
	"context"
	"strings"
	"time"
)

// PaperSize names a supported output page size
type PaperSize string

// Supported paper sizes
const (
	PaperSizeA4     PaperSize = "A4"
	PaperSizeA5     PaperSize = "A5"
	PaperSizeLetter PaperSize = "LETTER"
	PaperSizeLegal  PaperSize = "LEGAL"
)

// ParsePaperSize parses a configured paper size, case insensitive
func ParsePaperSize(s string) (PaperSize, bool) {
	p := PaperSize(strings.ToUpper(strings.TrimSpace(s)))
	return p, p.IsValid()
}

// IsValid reports whether the paper size is supported
func (p PaperSize) IsValid() bool {
	_, ok := paperDimensions[p]
	return ok
}

// Dimensions returns width and height in millimeters
func (p PaperSize) Dimensions() (width, height float64) {
	d := paperDimensions[p]
	return d[0], d[1]
}

var paperDimensions = map[PaperSize][2]float64{
	PaperSizeA4:     {210, 297},
	PaperSizeA5:     {148, 210},
	PaperSizeLetter: {215.9, 279.4},
	PaperSizeLegal:  {215.9, 355.6},
}

// Orientation of the printed page
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// Margins in millimeters
type Margins struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// DefaultMargins returns 15mm on every side
func DefaultMargins() Margins {
	return Margins{Top: 15, Right: 15, Bottom: 15, Left: 15}
}

// RenderRequest contains the parameters for rendering HTML to PDF
type RenderRequest struct {
	HTML        string
	PaperSize   PaperSize
	Orientation Orientation
	Margins     Margins
	// Title is written to the document metadata when HTML is a fragment
	Title string
	// FooterHTML is printed on every page when set
	FooterHTML string
	// Timeout overrides the renderer default
	Timeout time.Duration
}

// RenderResult contains the output from PDF rendering
type RenderResult struct {
	PDFData        []byte
	PageCount      int
	RenderDuration time.Duration
}

// PDFRenderer renders HTML to PDF
type PDFRenderer interface {
	Render(ctx context.Context, req *RenderRequest) (*RenderResult, error)
	Close() error
}

// RenderError represents an error during document rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Error codes for rendering failures
const (
	ErrCodeRenderTimeout    = "RENDER_TIMEOUT"
	ErrCodeRenderFailed     = "RENDER_FAILED"
	ErrCodeInvalidHTML      = "INVALID_HTML"
	ErrCodeInvalidPaperSize = "INVALID_PAPER_SIZE"
	ErrCodeTemplateFailed   = "TEMPLATE_FAILED"
)

// NewRenderError creates a new RenderError
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// estimatePageCount counts page objects in the PDF body
func estimatePageCount(pdf []byte) int {
	n := strings.Count(string(pdf), "/Type /Page") - strings.Count(string(pdf), "/Type /Pages")
	if n < 1 {
		n = strings.Count(string(pdf), "/Type/Page") - strings.Count(string(pdf), "/Type/Pages")
	}
	if n < 1 {
		return 1
	}
	return n
}
