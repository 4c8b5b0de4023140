package testkit

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thanhvudev/furnimart/pkg/router"
)

// ConfigEntry is one endpoint group in a master suite config. It names the
// handler under test, the route to mount it on, and the scenario file that
// drives it.
type ConfigEntry struct {
	ServiceName       string `json:"serviceName"`
	FilePath          string `json:"filePath"`
	ScenariosFileName string `json:"scenariosFileName"`
	ServiceURL        string `json:"serviceUrl"`
	HTTPMethodType    string `json:"httpMethodType"`
	// WorkflowService keys into the handler map passed to RunSuite.
	WorkflowService string `json:"workflowService"`
}

// RunSuite executes every entry in a master config file as a subtest. Each
// entry mounts its handler on a fresh router, loads its scenario array, and
// runs the scenarios against it.
func RunSuite(t *testing.T, masterConfigPath string, handlers map[string]http.HandlerFunc) {
	t.Helper()

	absMasterPath, err := filepath.Abs(masterConfigPath)
	if err != nil {
		t.Fatalf("testkit: resolve master config path %q: %v", masterConfigPath, err)
	}

	data, err := os.ReadFile(absMasterPath)
	if err != nil {
		t.Fatalf("testkit: read master config %q: %v", absMasterPath, err)
	}

	var entries []ConfigEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("testkit: parse master config %q: %v", absMasterPath, err)
	}

	baseDir := filepath.Dir(absMasterPath)

	for _, entry := range entries {
		t.Run(entry.ServiceName, func(t *testing.T) {
			handlerFunc, ok := handlers[entry.WorkflowService]
			if !ok {
				t.Fatalf("testkit: handler %q not found in provided map", entry.WorkflowService)
			}

			r := newEntryRouter(entry, handlerFunc)

			// FilePath is relative to the master config; fall back to the
			// test runner's working directory.
			scenarioPath := filepath.Join(baseDir, entry.FilePath, entry.ScenariosFileName)
			if _, err := os.Stat(scenarioPath); os.IsNotExist(err) {
				scenarioPath = filepath.Join(entry.FilePath, entry.ScenariosFileName)
			}

			scenarios, err := LoadScenarioArray(scenarioPath)
			if err != nil {
				t.Fatalf("testkit: load scenario array %q: %v", scenarioPath, err)
			}

			for _, s := range scenarios {
				// Scenarios inherit the entry's route unless they set their
				// own.
				if s.RequestURL == "" {
					s.RequestURL = entryURL(entry)
				}
				if s.RequestMethod == "" {
					s.RequestMethod = entry.HTTPMethodType
				}

				t.Run(s.Name, func(t *testing.T) {
					runScenario(t, r.Handler(), s)
				})
			}
		})
	}
}

func entryURL(entry ConfigEntry) string {
	url := entry.ServiceURL
	if url != "" && url[0] != '/' {
		url = "/" + url
	}
	return url
}

// newEntryRouter mounts the handler on a fresh router under the entry's
// method and path, so each suite entry runs in isolation.
func newEntryRouter(entry ConfigEntry, handlerFunc http.HandlerFunc) *router.Router {
	r := router.New()
	url := entryURL(entry)

	switch strings.ToUpper(entry.HTTPMethodType) {
	case "POST":
		r.Post(url, entry.WorkflowService, handlerFunc)
	case "PUT":
		r.Put(url, entry.WorkflowService, handlerFunc)
	case "PATCH":
		r.Patch(url, entry.WorkflowService, handlerFunc)
	case "DELETE":
		r.Delete(url, entry.WorkflowService, handlerFunc)
	default:
		r.Get(url, entry.WorkflowService, handlerFunc)
	}
	return r
}
