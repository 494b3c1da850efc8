package demux

import (
	"strings"

	"github.com/liserjrqlxue/demultBCAC/barcode"
)

// Annotation is the tag block appended to both read headers of a pair.
//
// MateSeq and MateQual are never filled, so RX and QX end with an empty
// mate field ("RX:Z:ACGT+").
type Annotation struct {
	Prefix    string
	BX        string
	IndexSeq  string
	IndexQual string
	MateSeq   string
	MateQual  string
}

// Annotate keeps the primary header up to and including its first space or
// tab and attaches the resolved pair and the raw index read.
func Annotate(header string, pair barcode.Pair, index string, qual string) Annotation {
	prefix := header + " "
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		prefix = header[:i+1]
	}
	return Annotation{
		Prefix:    prefix,
		BX:        pair.Code(),
		IndexSeq:  index,
		IndexQual: qual,
	}
}

func (a Annotation) String() string {
	var sb strings.Builder
	sb.Grow(len(a.Prefix) + len(a.BX) + 2*len(a.IndexSeq) + 24)
	sb.WriteString(a.Prefix)
	sb.WriteString("BX:Z:")
	sb.WriteString(a.BX)
	sb.WriteString("\tRX:Z:")
	sb.WriteString(a.IndexSeq)
	sb.WriteByte('+')
	sb.WriteString(a.MateSeq)
	sb.WriteString("\tQX:Z:")
	sb.WriteString(a.IndexQual)
	sb.WriteByte('+')
	sb.WriteString(a.MateQual)
	return sb.String()
}
