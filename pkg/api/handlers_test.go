package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastobjectnotation/fon/pkg/fon"
)

// memArchive is an in-memory IArchive for handler tests.
type memArchive struct {
	recs map[int]*fon.Record
}

func newMemArchive() *memArchive {
	return &memArchive{recs: make(map[int]*fon.Record)}
}

func (m *memArchive) Put(index int, rec *fon.Record) error {
	m.recs[index] = rec
	return nil
}

func (m *memArchive) Get(index int) (*fon.Record, bool, error) {
	rec, ok := m.recs[index]
	return rec, ok, nil
}

func (m *memArchive) Delete(index int) error {
	delete(m.recs, index)
	return nil
}

func (m *memArchive) Len() (int, error) {
	return len(m.recs), nil
}

func newTestServer(t *testing.T, apiKey string) (*httptest.Server, *memArchive) {
	t.Helper()
	archive := newMemArchive()
	metrics := NewMetricsWith(prometheus.NewRegistry())
	server := NewServer(archive, ServerConfig{Port: 0, Bind: "127.0.0.1", APIKey: apiKey}, metrics)
	ts := httptest.NewServer(NewRouter(server, metrics))
	t.Cleanup(ts.Close)
	return ts, archive
}

func doJSON(t *testing.T, method, url string, body interface{}) (*http.Response, APIResponse) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var apiResp APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&apiResp))
	return resp, apiResp
}

func TestHandleHealth(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	data, ok := body.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "healthy", data["status"])
}

func TestHandleParse(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/parse", ParseRequest{
		Line: `id=i:42,name=s:"test",tags=s:["a","b"]`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)

	encoded, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var parsed ParseResponse
	require.NoError(t, json.Unmarshal(encoded, &parsed))

	assert.Equal(t, `id=i:42,name=s:"test",tags=s:["a","b"]`, parsed.Canonical)
	require.Len(t, parsed.Fields, 3)
	assert.Equal(t, "id", parsed.Fields[0].Key)
	assert.Equal(t, "i", parsed.Fields[0].Tag)
	assert.False(t, parsed.Fields[0].Array)
	assert.Equal(t, "tags", parsed.Fields[2].Key)
	assert.True(t, parsed.Fields[2].Array)
}

func TestHandleParseErrors(t *testing.T) {
	ts, _ := newTestServer(t, "")

	tests := []struct {
		name string
		line string
	}{
		{"bad numeric", "n=i:notanumber"},
		{"unknown tag", "n=x:1"},
		{"bad key", "bad key=i:1"},
		{"duplicate key", "a=i:1,a=i:2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/parse", ParseRequest{Line: tt.line})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, body.Success)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleSerialize(t *testing.T) {
	ts, _ := newTestServer(t, "")

	req := SerializeRequest{Fields: []FieldInput{
		{Key: "id", Tag: "i", Value: json.RawMessage(`42`)},
		{Key: "name", Tag: "s", Value: json.RawMessage(`"test"`)},
		{Key: "scores", Tag: "d", Array: true, Value: json.RawMessage(`[1.5,2.5]`)},
	}}
	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/serialize", req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)

	encoded, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var serialized SerializeResponse
	require.NoError(t, json.Unmarshal(encoded, &serialized))
	assert.Equal(t, `id=i:42,name=s:"test",scores=d:[1.5,2.5]`, serialized.Line)
}

func TestHandleSerializeErrors(t *testing.T) {
	ts, _ := newTestServer(t, "")

	tests := []struct {
		name   string
		fields []FieldInput
	}{
		{"no fields", nil},
		{"unknown tag", []FieldInput{{Key: "a", Tag: "x", Value: json.RawMessage(`1`)}}},
		{"value out of range", []FieldInput{{Key: "a", Tag: "e", Value: json.RawMessage(`300`)}}},
		{"wrong value shape", []FieldInput{{Key: "a", Tag: "i", Value: json.RawMessage(`"nope"`)}}},
		{"duplicate key", []FieldInput{
			{Key: "a", Tag: "i", Value: json.RawMessage(`1`)},
			{Key: "a", Tag: "i", Value: json.RawMessage(`2`)},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/serialize", SerializeRequest{Fields: tt.fields})
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, body.Success)
		})
	}
}

func TestParseSerializeRoundTrip(t *testing.T) {
	ts, _ := newTestServer(t, "")
	line := `id=l:1234567890123,blob=r:"HelloWorld",ok=b:1`

	resp, body := doJSON(t, http.MethodPost, ts.URL+"/api/v1/parse", ParseRequest{Line: line})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	encoded, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var parsed ParseResponse
	require.NoError(t, json.Unmarshal(encoded, &parsed))

	// Feed the typed fields straight back into the serializer.
	inputs := make([]FieldInput, len(parsed.Fields))
	for i, f := range parsed.Fields {
		value, err := json.Marshal(f.Value)
		require.NoError(t, err)
		inputs[i] = FieldInput{Key: f.Key, Tag: f.Tag, Array: f.Array, Value: value}
	}

	resp, body = doJSON(t, http.MethodPost, ts.URL+"/api/v1/serialize", SerializeRequest{Fields: inputs})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	encoded, err = json.Marshal(body.Data)
	require.NoError(t, err)
	var serialized SerializeResponse
	require.NoError(t, json.Unmarshal(encoded, &serialized))
	assert.Equal(t, line, serialized.Line)
}

func TestRecordLifecycle(t *testing.T) {
	ts, archive := newTestServer(t, "")
	line := `id=i:7,name=s:"rec"`

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/v1/records/7", RecordRequest{Line: line})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	assert.Len(t, archive.recs, 1)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/records/7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	encoded, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var rec RecordResponse
	require.NoError(t, json.Unmarshal(encoded, &rec))
	assert.Equal(t, 7, rec.Index)
	assert.Equal(t, line, rec.Line)

	resp, body = doJSON(t, http.MethodDelete, ts.URL+"/api/v1/records/7", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)

	resp, body = doJSON(t, http.MethodGet, ts.URL+"/api/v1/records/7", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestRecordInvalidRequests(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp, body := doJSON(t, http.MethodPut, ts.URL+"/api/v1/records/-1", RecordRequest{Line: "a=i:1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/api/v1/records/abc", RecordRequest{Line: "a=i:1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)

	resp, body = doJSON(t, http.MethodPut, ts.URL+"/api/v1/records/0", RecordRequest{Line: "a=x:1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestHandleStats(t *testing.T) {
	ts, archive := newTestServer(t, "")

	for _, i := range []int{0, 3, 9} {
		rec := fon.NewRecord()
		require.NoError(t, rec.Set("n", fon.Int(int32(i))))
		require.NoError(t, archive.Put(i, rec))
	}

	resp, body := doJSON(t, http.MethodGet, ts.URL+"/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	encoded, err := json.Marshal(body.Data)
	require.NoError(t, err)
	var stats StatsResponse
	require.NoError(t, json.Unmarshal(encoded, &stats))
	assert.Equal(t, 3, stats.Records)

	indices := make([]int, 0, len(archive.recs))
	for i := range archive.recs {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	assert.Equal(t, []int{0, 3, 9}, indices)
}

func TestRecordToFieldsValues(t *testing.T) {
	rec := fon.NewRecord()
	require.NoError(t, rec.Set("u", fon.ULong(18446744073709551615)))
	require.NoError(t, rec.Set("blob", fon.Raw(fon.NewRawData([]byte{0x86, 0x4F, 0xD2, 0x6F, 0xB5, 0x59, 0xF7, 0x5B}))))

	fields, err := recordToFields(rec)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	assert.Equal(t, "g", fields[0].Tag)
	assert.Equal(t, uint64(18446744073709551615), fields[0].Value)
	assert.Equal(t, "r", fields[1].Tag)
	assert.Equal(t, "HelloWorld", fields[1].Value)
}

func TestFieldsToRecordPrecision(t *testing.T) {
	fields := []FieldInput{
		{Key: "big", Tag: "g", Value: json.RawMessage(`18446744073709551615`)},
		{Key: "neg", Tag: "l", Value: json.RawMessage(`-9223372036854775808`)},
	}
	rec, err := fieldsToRecord(fields)
	require.NoError(t, err)

	v, ok := rec.Get("big")
	require.True(t, ok)
	n, err := v.ULong()
	require.NoError(t, err)
	assert.Equal(t, uint64(18446744073709551615), n)

	v, ok = rec.Get("neg")
	require.True(t, ok)
	l, err := v.Long()
	require.NoError(t, err)
	assert.Equal(t, int64(-9223372036854775808), l)
}

func TestFieldsToRecordRawArrayRejected(t *testing.T) {
	_, err := fieldsToRecord([]FieldInput{
		{Key: "a", Tag: "r", Array: true, Value: json.RawMessage(`["x"]`)},
	})
	require.Error(t, err)
	kind, ok := fon.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, fon.ErrKindMismatch, kind)
}

func TestFieldsToRecordErrorNamesField(t *testing.T) {
	_, err := fieldsToRecord([]FieldInput{
		{Key: "good", Tag: "i", Value: json.RawMessage(`1`)},
		{Key: "bad", Tag: "t", Value: json.RawMessage(`99999`)},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("field %q", "bad"))
}
