package protocol_test

import (
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forma/internal/adapters/protocol"
	"go.trai.ch/forma/internal/core/domain"
)

func TestDecoder_Stream(t *testing.T) {
	in := strings.Join([]string{
		`{"id":"a","type":"ping"}`,
		``,
		`{"id":"b","type":"build","params":{"path":{"length":210}},"tolerance":0.12345,` +
			`"parts":{"base":{"enabled":true},"toe":{"enabled":true,"freeze":true}}}`,
		`{"id":"c","type":"export","format":"stl","filename":"shoe.stl","parts":{"heel":{"enabled":true}}}`,
	}, "\n")
	dec := protocol.NewDecoder(strings.NewReader(in))

	ping, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, domain.Request{ID: "a", Type: domain.RequestPing}, ping)

	build, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, domain.RequestBuild, build.Type)
	assert.InDelta(t, 210, build.Params.Path.Length, 1e-12)
	assert.InDelta(t, domain.DefaultParams().Toe.Thickness, build.Params.Toe.Thickness, 1e-12)
	assert.InDelta(t, 0.123, build.Tolerance, 1e-12)
	assert.Equal(t, []domain.PartName{domain.PartBase, domain.PartToe}, build.Parts.Enabled())
	assert.True(t, build.Parts[domain.PartToe].Freeze)

	export, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, domain.FormatSTL, export.Format)
	assert.Equal(t, "shoe.stl", export.Filename)
	assert.Equal(t, []domain.PartName{domain.PartHeel}, export.Parts.Enabled())

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestParseRequest_Defaults(t *testing.T) {
	req, err := protocol.ParseRequest([]byte(`{"type":"export"}`))
	require.NoError(t, err)

	_, err = uuid.Parse(req.ID)
	assert.NoError(t, err, "missing ids are generated")
	assert.Equal(t, domain.DefaultParams(), req.Params)
	assert.InDelta(t, domain.DefaultTolerance, req.Tolerance, 1e-12)
	assert.Len(t, req.Parts.Enabled(), 3)
	assert.Equal(t, domain.FormatSTL, req.Format)
	assert.Equal(t, "forma.stl", req.Filename)
}

func TestParseRequest_LegacyAndClamp(t *testing.T) {
	req, err := protocol.ParseRequest([]byte(`{"type":"build","legacy":{"heel_stations":1000,"toe_b_end_x":41},"tolerance":99}`))
	require.NoError(t, err)
	assert.Equal(t, 128, req.Params.Heel.Stations)
	assert.InDelta(t, 41, req.Params.Toe.B.EndX, 1e-12)
	assert.InDelta(t, domain.MaxTolerance, req.Tolerance, 1e-12)
}

func TestParseRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		want   error
		wantID string
	}{
		{name: "bad json", line: `{"type":`, want: domain.ErrProtocolDecode},
		{name: "unknown type", line: `{"id":"x","type":"render"}`, want: domain.ErrUnknownRequest, wantID: "x"},
		{name: "unknown part", line: `{"id":"y","type":"build","parts":{"sole":{"enabled":true}}}`, want: domain.ErrUnknownPart, wantID: "y"},
		{name: "unknown param field", line: `{"type":"build","params":{"path":{"len":3}}}`, want: domain.ErrProtocolDecode},
		{name: "unknown legacy key", line: `{"type":"build","legacy":{"nope":1}}`, want: domain.ErrUnknownParam},
		{name: "bad format", line: `{"type":"export","format":"obj"}`, want: domain.ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := protocol.ParseRequest([]byte(tt.line))
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want.Error())
			assert.NotEmpty(t, req.ID)
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, req.ID)
			}
		})
	}
}

func TestDecoder_ContinuesAfterBadLine(t *testing.T) {
	dec := protocol.NewDecoder(strings.NewReader("not json\n{\"type\":\"ping\",\"id\":\"p\"}\n"))

	_, err := dec.Decode()
	assert.ErrorContains(t, err, domain.ErrProtocolDecode.Error())

	req, err := dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "p", req.ID)
}

func TestDecoder_SkipsOversizedLine(t *testing.T) {
	long := `{"type":"ping","pad":"` + strings.Repeat("x", protocol.MaxLineBytes) + `"}`
	dec := protocol.NewDecoder(strings.NewReader(long + "\n" + `{"id":"after","type":"ping"}`))

	req, err := dec.Decode()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLineTooLong)
	assert.ErrorContains(t, err, domain.ErrProtocolDecode.Error())
	_, parseErr := uuid.Parse(req.ID)
	assert.NoError(t, parseErr)

	req, err = dec.Decode()
	require.NoError(t, err)
	assert.Equal(t, "after", req.ID)

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoder_LineAtLimit(t *testing.T) {
	head := `{"id":"edge","type":"ping","pad":"`
	tail := `"}`
	line := head + strings.Repeat("x", protocol.MaxLineBytes-len(head)-len(tail)) + tail
	require.Len(t, line, protocol.MaxLineBytes)

	req, err := protocol.NewDecoder(strings.NewReader(line + "\n")).Decode()
	require.NoError(t, err)
	assert.Equal(t, "edge", req.ID)
}

func TestDecoder_OversizedLastLine(t *testing.T) {
	dec := protocol.NewDecoder(strings.NewReader(strings.Repeat(" ", protocol.MaxLineBytes+1) + "x"))

	_, err := dec.Decode()
	assert.ErrorIs(t, err, domain.ErrLineTooLong)

	_, err = dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}
