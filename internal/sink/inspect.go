package sink

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"pkg.jsn.cam/rodapgen/internal/compress"
	"pkg.jsn.cam/rodapgen/internal/sum"
	"pkg.jsn.cam/rodapgen/pkg/rodap"
)

// Report describes a record stream read back from storage.
type Report struct {
	Records int64
	Bytes   int64
	Sum     sum.Sum
}

// Inspect decompresses the file at path, checks every record and computes the
// checksum of the record stream.
func Inspect(path string, mode compress.Mode) (Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	r := mode.NewReader(f)
	defer r.Close()
	return InspectReader(r)
}

// InspectReader is Inspect for an uncompressed stream.
func InspectReader(r io.Reader) (Report, error) {
	h := sum.New()
	br := bufio.NewReaderSize(io.TeeReader(r, h), 64*1024)

	var rep Report
	trailingNewline := false
	for {
		line, err := br.ReadSlice(rodap.Newline)
		if errors.Is(err, bufio.ErrBufferFull) {
			return rep, fmt.Errorf("record %d: %w: line too long", rep.Records+1, rodap.ErrMalformed)
		}
		if err != nil && err != io.EOF {
			return rep, err
		}

		if len(line) > 0 {
			trailingNewline = line[len(line)-1] == rodap.Newline
			if _, perr := rodap.ParseRecord(bytes.TrimSuffix(line, []byte{rodap.Newline})); perr != nil {
				return rep, fmt.Errorf("record %d: %w", rep.Records+1, perr)
			}
			rep.Records++
			rep.Bytes += int64(len(line))
		}

		if err == io.EOF {
			break
		}
	}

	if trailingNewline {
		return rep, fmt.Errorf("%w: trailing newline", rodap.ErrMalformed)
	}
	rep.Sum = h.Sum()
	return rep, nil
}
