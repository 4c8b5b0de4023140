package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"testing"
)

// Exercises the suite runner end to end against a temp directory: a master
// config pointing at one scenario file, whose request echoes back unchanged.
func TestSuiteRunner(t *testing.T) {
	masterConfig := []ConfigEntry{
		{
			ServiceName:       "TestEchoEndpoint",
			FilePath:          "sample_api",
			ScenariosFileName: "echo_scenario.json",
			ServiceURL:        "/api/echo",
			HTTPMethodType:    "POST",
			WorkflowService:   "HandleEcho",
		},
	}

	scenarios := []Scenario{
		{
			Name:             "EchoSuccess",
			Description:      "Echoes the request body",
			RequestMethod:    "POST",
			RequestURL:       "/api/echo",
			ExpectedCode:     200,
			RequestFileName:  "req.json",
			ResponseFileName: "res.json",
		},
	}

	dir := t.TempDir()
	masterPath := filepath.Join(dir, "test_scenarios.json")

	masterData, _ := json.Marshal(masterConfig)
	_ = os.WriteFile(masterPath, masterData, 0644)

	apiDir := filepath.Join(dir, "sample_api")
	_ = os.MkdirAll(apiDir, 0755)

	scenarioData, _ := json.Marshal(scenarios)
	_ = os.WriteFile(filepath.Join(apiDir, "echo_scenario.json"), scenarioData, 0644)

	body := []byte(`{"message": "hello"}`)
	_ = os.WriteFile(filepath.Join(apiDir, "req.json"), body, 0644)
	_ = os.WriteFile(filepath.Join(apiDir, "res.json"), body, 0644)

	handlers := map[string]http.HandlerFunc{
		"HandleEcho": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"message": "hello"}`))
		},
	}

	RunSuite(t, masterPath, handlers)
}
