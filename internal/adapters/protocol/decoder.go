package protocol

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.trai.ch/forma/internal/core/domain"
	"go.trai.ch/zerr"
)

// MaxLineBytes bounds one request line.
const MaxLineBytes = 4 << 20

// Decoder reads one request per line.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a Decoder on r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReaderSize(r, 64*1024)}
}

// Decode returns the next request. Blank lines are skipped; io.EOF marks the
// end of input. A malformed or oversized line yields an error, and the
// returned request still carries an id so the failure can be answered;
// decoding may continue with the next line. Only a failing reader returns an
// error with an empty id.
func (d *Decoder) Decode() (domain.Request, error) {
	for {
		line, err := d.readLine()
		if errors.Is(err, domain.ErrLineTooLong) {
			return domain.Request{ID: uuid.NewString()}, errors.Join(domain.ErrProtocolDecode, err)
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return domain.Request{}, errors.Join(domain.ErrProtocolDecode, err)
		}

		line = bytes.TrimSpace(line)
		if len(line) > 0 {
			return ParseRequest(line)
		}
		if err != nil {
			return domain.Request{}, io.EOF
		}
	}
}

// readLine returns the next line without its terminator. A line over
// MaxLineBytes is consumed through its newline and reported as ErrLineTooLong.
// The final line may end at EOF, in which case both the line and io.EOF are
// returned.
func (d *Decoder) readLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := d.r.ReadSlice('\n')
		n := len(line) + len(chunk)
		if err == nil {
			n--
		}
		if n > MaxLineBytes {
			return nil, d.discardLine(err)
		}
		line = append(line, chunk...)
		switch {
		case err == nil:
			return line[:len(line)-1], nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return line, err
		}
	}
}

// discardLine skips input up to and including the next newline. err is the
// error of the read that overflowed the line.
func (d *Decoder) discardLine(err error) error {
	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = d.r.ReadSlice('\n')
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return domain.ErrLineTooLong
}

// ParseRequest decodes one request object. Requests without an id get a
// random one.
func ParseRequest(data []byte) (domain.Request, error) {
	var w wireRequest
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.Request{ID: uuid.NewString()}, errors.Join(domain.ErrProtocolDecode, err)
	}

	req := domain.Request{ID: w.ID, Type: domain.RequestType(w.Type)}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	switch req.Type {
	case domain.RequestPing:
		return req, nil
	case domain.RequestBuild, domain.RequestExport:
	default:
		return req, zerr.With(domain.ErrUnknownRequest, "type", w.Type)
	}

	params := domain.DefaultParams()
	if len(w.Params) > 0 {
		dec := json.NewDecoder(bytes.NewReader(w.Params))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&params); err != nil {
			return req, errors.Join(domain.ErrProtocolDecode, err)
		}
	}
	if len(w.Legacy) > 0 {
		if err := params.ApplyLegacy(w.Legacy); err != nil {
			return req, err
		}
	}
	req.Params = params.Clamp()

	req.Tolerance = domain.DefaultTolerance
	if w.Tolerance != nil {
		req.Tolerance = *w.Tolerance
	}
	req.Tolerance = domain.QuantizeTolerance(req.Tolerance)

	parts, err := partSet(w.Parts)
	if err != nil {
		return req, err
	}
	req.Parts = parts

	if req.Type == domain.RequestExport {
		req.Format = domain.FormatSTL
		if w.Format != "" {
			f, err := domain.ParseExportFormat(w.Format)
			if err != nil {
				return req, err
			}
			req.Format = f
		}
		req.Filename = w.Filename
		if req.Filename == "" {
			req.Filename = "forma." + req.Format.Extension()
		}
	}
	return req, nil
}

func partSet(raw map[string]domain.PartFlags) (domain.PartSet, error) {
	if raw == nil {
		return domain.AllEnabled(), nil
	}
	set := make(domain.PartSet, len(raw))
	for name, flags := range raw {
		part, err := domain.ParsePartName(name)
		if err != nil {
			return nil, err
		}
		set[part] = flags
	}
	return set, nil
}
