package cache

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/dekarrin/gdlint/gddiag"
)

// snapshot is the on-wire shape of a cached analysis result: a
// Diagnostic stripped of its live gdast.Node reference, since a cache
// entry is read back long after the tree it was computed from is gone,
// plus the RunID of the analysis pass that produced it. Encoding
// follows the teacher's tunascript/binary.go convention —
// length-prefixed primitives, hand-rolled rather than reflection-based —
// adapted to carry rezi's BinaryMarshaler/BinaryUnmarshaler contract.
type snapshot struct {
	runID       uuid.UUID
	diagnostics []gddiag.Diagnostic
}

func (s *snapshot) MarshalBinary() ([]byte, error) {
	buf := append([]byte(nil), s.runID[:]...)
	buf = append(buf, encInt(len(s.diagnostics))...)
	for _, d := range s.diagnostics {
		buf = append(buf, encDiagnostic(d)...)
	}
	return buf, nil
}

func (s *snapshot) UnmarshalBinary(data []byte) error {
	if len(data) < 16 {
		return fmt.Errorf("unexpected end of data reading run id")
	}
	copy(s.runID[:], data[:16])
	data = data[16:]

	count, n, err := decInt(data)
	if err != nil {
		return fmt.Errorf("diagnostic count: %w", err)
	}
	data = data[n:]
	if count < 0 {
		return fmt.Errorf("negative diagnostic count %d", count)
	}
	out := make([]gddiag.Diagnostic, 0, count)
	for i := 0; i < count; i++ {
		d, n, err := decDiagnostic(data)
		if err != nil {
			return fmt.Errorf("diagnostic %d: %w", i, err)
		}
		data = data[n:]
		out = append(out, d)
	}
	s.diagnostics = out
	return nil
}

func encInt(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(int64(v)))
	return b
}

func decInt(data []byte) (int, int, error) {
	if len(data) < 8 {
		return 0, 0, fmt.Errorf("unexpected end of data reading int")
	}
	return int(int64(binary.BigEndian.Uint64(data[:8]))), 8, nil
}

func encString(s string) []byte {
	b := encInt(len(s))
	return append(b, []byte(s)...)
}

func decString(data []byte) (string, int, error) {
	n, read, err := decInt(data)
	if err != nil {
		return "", 0, err
	}
	data = data[read:]
	if n < 0 || len(data) < n {
		return "", 0, fmt.Errorf("unexpected end of data reading string")
	}
	return string(data[:n]), read + n, nil
}

func encDiagnostic(d gddiag.Diagnostic) []byte {
	var buf []byte
	buf = append(buf, encInt(int(d.Code))...)
	buf = append(buf, encInt(int(d.Severity))...)
	buf = append(buf, encString(d.Message)...)
	buf = append(buf, encString(d.File)...)
	buf = append(buf, encInt(d.Span.StartLine)...)
	buf = append(buf, encInt(d.Span.StartCol)...)
	buf = append(buf, encInt(d.Span.EndLine)...)
	buf = append(buf, encInt(d.Span.EndCol)...)
	return buf
}

func decDiagnostic(data []byte) (gddiag.Diagnostic, int, error) {
	var total int
	readInt := func() (int, error) {
		v, n, err := decInt(data)
		data = data[n:]
		total += n
		return v, err
	}
	readString := func() (string, error) {
		v, n, err := decString(data)
		data = data[n:]
		total += n
		return v, err
	}

	code, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("code: %w", err)
	}
	sev, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("severity: %w", err)
	}
	message, err := readString()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("message: %w", err)
	}
	file, err := readString()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("file: %w", err)
	}
	startLine, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("span start line: %w", err)
	}
	startCol, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("span start col: %w", err)
	}
	endLine, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("span end line: %w", err)
	}
	endCol, err := readInt()
	if err != nil {
		return gddiag.Diagnostic{}, 0, fmt.Errorf("span end col: %w", err)
	}

	return gddiag.Diagnostic{
		Code:     gddiag.Code(code),
		Severity: gddiag.Severity(sev),
		Message:  message,
		File:     file,
		Span: gddiag.Span{
			StartLine: startLine, StartCol: startCol,
			EndLine: endLine, EndCol: endCol,
		},
	}, total, nil
}
