package testkit_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thanhvudev/furnimart/pkg/testkit"
)

// writeScenario materializes a scenario plus its body files into dir and
// returns the scenario file's path.
func writeScenario(t *testing.T, dir string, s testkit.Scenario, reqBody, resBody []byte) string {
	t.Helper()

	if reqBody != nil {
		s.RequestFileName = filepath.Join("bodies", "req.json")
		if err := os.MkdirAll(filepath.Join(dir, "bodies"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, s.RequestFileName), reqBody, 0644); err != nil {
			t.Fatal(err)
		}
	}
	if resBody != nil {
		s.ResponseFileName = filepath.Join("bodies", "res.json")
		if err := os.MkdirAll(filepath.Join(dir, "bodies"), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, s.ResponseFileName), resBody, 0644); err != nil {
			t.Fatal(err)
		}
	}

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "scenario.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunScenarioFile(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"status":404,"message":"not found"}`)) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":200,"data":{"healthy":true}}`)) //nolint:errcheck
	})

	dir := t.TempDir()
	path := writeScenario(t, dir, testkit.Scenario{
		Name:          "HealthCheck",
		RequestMethod: "GET",
		RequestURL:    "/api/health",
		ExpectedCode:  200,
	}, nil, []byte(`{"status":200,"data":{"healthy":true}}`))

	testkit.Run(t, handler, path)
}

func TestLoadScenarioValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"requestUrl":"/x","expectedCode":200}`), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := testkit.LoadScenario(path)
	assert.Error(t, err, "a scenario without a name should not load")
}

func TestMockTransportURLMatching(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "fulfillment webhook mocked",
		IsMockRequired: true,
		ExpectedCode:   200,
		RequestURL:     "/anything",
		RequestMethod:  "GET",
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:   "httprequest",
				IsMock:   true,
				MatchURL: "https://fulfillment.example.com/",
				ReturnData: testkit.MockReturnData{
					StatusCode: 200,
					// base64 of {"ok":true}
					Body: "eyJvayI6dHJ1ZX0=",
				},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodGet, "https://fulfillment.example.com/orders", nil)
	resp, err := mt.RoundTrip(req)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	errs := mt.AssertAllCalled()
	assert.Empty(t, errs, "all HTTP mock steps should have been called")
}

func TestMockTransportUnmatchedCallFails(t *testing.T) {
	s := &testkit.Scenario{
		Name:           "unmatched outgoing call",
		IsMockRequired: true,
		ExpectedCode:   200,
		RequestURL:     "/anything",
		RequestMethod:  "GET",
		NetUtilMockStep: []testkit.MockStep{
			{
				Method:     "httprequest",
				IsMock:     true,
				MatchURL:   "https://expected.example.com/",
				ReturnData: testkit.MockReturnData{StatusCode: 200},
			},
		},
	}

	mt := testkit.NewMockTransport(s)

	req := httptest.NewRequest(http.MethodGet, "https://unexpected.example.com/api", nil)
	_, err := mt.RoundTrip(req)

	assert.Error(t, err, "an unmatched URL should fail when isMockRequired is set")
}

func TestAssertJSONBodyIgnoresKeyOrder(t *testing.T) {
	s := &testkit.Scenario{Name: "json assert", ExpectedCode: 200}

	expected := []byte(`{"name":"Oak Desk","price":299.99}`)
	actual := []byte(`{"price":  299.99, "name": "Oak Desk"}`)
	testkit.AssertJSONBody(t, s, expected, actual)
}
