package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/metalkit/netrecon/pkg/nicview"
	"github.com/metalkit/netrecon/pkg/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	records []nicview.PortRecord
	bios    nicview.BIOSInfo
}

func (f *fakeSource) NicView(context.Context) ([]nicview.PortRecord, error) {
	return f.records, nil
}

func (f *fakeSource) BIOSEnumeration(context.Context) (nicview.BIOSInfo, error) {
	return f.bios, nil
}

func twoPortSource() *fakeSource {
	return &fakeSource{records: []nicview.PortRecord{
		{FQDD: "NIC.Integrated.1-1-1", CurrentMAC: "00:0e:1e:01:01:01",
			PermanentMAC: "00:0e:1e:01:01:02", LinkSpeed: nicview.Speed10Gb, Status: "Enabled"},
		{FQDD: "NIC.Integrated.1-2-1", CurrentMAC: "00:0e:1e:02:01:01",
			PermanentMAC: "00:0e:1e:02:01:02", LinkSpeed: nicview.Speed10Gb, Status: "Enabled"},
	}}
}

const logicalConfig = `{
	"id": "server-1",
	"interfaces": [
		{"name": "Fabric A", "enabled": true, "fabrictype": "ethernet", "nictype": "2x10Gb",
		 "interfaces": [
			{"name": "Port 1", "partitions": [{"name": "Partition 1"}]},
			{"name": "Port 2", "partitions": [{"name": "Partition 1"}]}
		 ]}
	]
}`

func testRouter() http.Handler {
	s := &server.Server{Source: twoPortSource()}
	return s.Router()
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	testRouter().ServeHTTP(recorder, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestInventory(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	testRouter().ServeHTTP(recorder, httptest.NewRequest("GET", "/inventory", nil))
	require.Equal(t, http.StatusOK, recorder.Code)

	var summaries []server.GroupSummary
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "NIC.Integrated.1", summaries[0].Prefix)
	assert.Equal(t, "2x10Gb", summaries[0].Shape)
	assert.Equal(t, []string{"00:0e:1e:01:01:01", "00:0e:1e:02:01:01"}, summaries[0].PortMACs)
}

func TestReconcile(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reconcile", strings.NewReader(logicalConfig))
	testRouter().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"fqdd":"NIC.Integrated.1-1-1"`)
}

func TestReconcileNoMatch(t *testing.T) {
	t.Parallel()

	noMatch := strings.Replace(logicalConfig, "2x10Gb", "4x25Gb", 1)
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reconcile", strings.NewReader(noMatch))
	testRouter().ServeHTTP(recorder, request)
	require.Equal(t, http.StatusConflict, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "no compatible physical NIC")
}

func TestReconcileBadBody(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/reconcile", strings.NewReader("not json"))
	testRouter().ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
