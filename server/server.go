// expose the http api for the add-on clients, receive signals from docker_cron //
package server

import (
	"crypto/subtle"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httputil"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.ibmgcloud.net/dth/pmo_saver/config"
	"github.ibmgcloud.net/dth/pmo_saver/filestore"
	"github.ibmgcloud.net/dth/pmo_saver/handler"
	"github.ibmgcloud.net/dth/pmo_saver/mailstore"
	"github.ibmgcloud.net/dth/pmo_saver/pmo"
	"github.ibmgcloud.net/dth/pmo_saver/selections"

	glb "github.ibmgcloud.net/dth/pmo_saver/global_structs"
	lg "github.ibmgcloud.net/dth/pmo_saver/logging"
)

// everything the endpoints need, wired once at startup
type Env struct {
	Cfg       *glb.Config
	DB        *sql.DB
	MailStore *mailstore.Store
	Provider  *filestore.Provider
	Poster    pmo.Poster
}

func getBody(request *http.Request) ([]byte, error) {
	head, err := httputil.DumpRequest(request, false)
	if err != nil {
		return nil, err
	}
	bodyHead, err := httputil.DumpRequest(request, true)
	if err != nil {
		return nil, err
	}
	return bodyHead[len(head):], nil
}

func checkToken(response http.ResponseWriter, request *http.Request, cfg *glb.Config) bool {
	token := request.URL.Query().Get("token")
	if subtle.ConstantTimeCompare([]byte(token), []byte(cfg.APIToken)) != 1 {
		lg.Logf("wrong token")
		response.WriteHeader(http.StatusBadRequest)
		return false
	}
	return true
}

// every user gets their own settings and selections, the client identifies
// itself through this header
func requestUser(request *http.Request) string {
	user := request.Header.Get("X-User")
	if user == "" {
		return "default"
	}
	return user
}

func writeJSON(response http.ResponseWriter, status int, payload any) {
	response.Header().Set("Content-Type", "application/json")
	response.WriteHeader(status)
	if err := json.NewEncoder(response).Encode(payload); err != nil {
		lg.Logf("failed writing response: %s\n", err)
	}
}

// user errors go back as message, everything else gets logged and hidden
func writeError(response http.ResponseWriter, cfg *glb.Config, err error) {
	if userErr, ok := err.(*handler.UserError); ok {
		writeJSON(response, http.StatusBadRequest, map[string]string{"error": userErr.Msg})
		return
	}
	lg.Loge(cfg, err)
	writeJSON(response, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func settingsHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	user := requestUser(request)

	switch request.Method {
	case http.MethodGet:
		view, err := handler.GetSettingsView(env.Cfg, env.DB, user)
		if err != nil {
			writeError(response, env.Cfg, err)
			return
		}
		writeJSON(response, http.StatusOK, view)
	case http.MethodPost:
		body, err := getBody(request)
		if err != nil {
			lg.Loge(env.Cfg, err)
			response.WriteHeader(http.StatusBadRequest)
			return
		}
		var incoming glb.Settings
		if err := json.Unmarshal(body, &incoming); err != nil {
			writeJSON(response, http.StatusBadRequest, map[string]string{"error": "malformed settings payload"})
			return
		}
		if err := handler.SaveSettings(env.Cfg, env.DB, user, &incoming); err != nil {
			writeError(response, env.Cfg, err)
			return
		}
		lg.Logf("settings saved for user %s\n", user)
		writeJSON(response, http.StatusOK, map[string]string{"status": "Settings saved successfully!"})
	default:
		response.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func ticketsHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	options, err := handler.ListTickets(env.Cfg, env.DB, requestUser(request))
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}
	writeJSON(response, http.StatusOK, options)
}

type attachmentView struct {
	Name        string `json:"name"`
	Size        string `json:"size"`
	SourceIndex int    `json:"sourceIndex"`
	Selected    bool   `json:"selected"`
}

type attachmentGroup struct {
	Extension   string           `json:"extension"`
	Attachments []attachmentView `json:"attachments"`
}

// attachmentsHandler lists the thread's attachments grouped by extension, the
// way the selection ui renders them, with the stored checkbox state applied
func attachmentsHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	threadID := request.URL.Query().Get("thread")
	if threadID == "" {
		writeJSON(response, http.StatusBadRequest, map[string]string{"error": "Please open an email to save attachments"})
		return
	}
	user := requestUser(request)

	records, err := env.MailStore.GetThreadAttachments(threadID)
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}

	state, err := selections.Load(env.DB, user, threadID)
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}

	groups, extensions := mailstore.GroupByExtension(records)
	result := make([]attachmentGroup, 0, len(extensions))
	for _, ext := range extensions {
		group := attachmentGroup{Extension: ext}
		for _, record := range groups[ext] {
			// with no stored state everything starts out checked
			selected := true
			if state != nil {
				selected = state[selections.Key(record.Name, record.SourceIndex)]
			}
			group.Attachments = append(group.Attachments, attachmentView{
				Name:        record.Name,
				Size:        mailstore.FormatFileSize(record.Size),
				SourceIndex: record.SourceIndex,
				Selected:    selected,
			})
		}
		result = append(result, group)
	}
	writeJSON(response, http.StatusOK, result)
}

func saveHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	if request.Method != http.MethodPost {
		response.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	body, err := getBody(request)
	if err != nil {
		lg.Loge(env.Cfg, err)
		response.WriteHeader(http.StatusBadRequest)
		return
	}
	var req handler.SaveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(response, http.StatusBadRequest, map[string]string{"error": "malformed save payload"})
		return
	}

	report, err := handler.HandleSave(env.Cfg, env.DB, env.MailStore, env.Provider, env.Poster, requestUser(request), &req)
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}
	writeJSON(response, http.StatusOK, report)
}

func testJiraHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	userInfo, err := handler.TestJiraConnection(env.Cfg, env.DB, requestUser(request))
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}
	writeJSON(response, http.StatusOK, map[string]string{"status": "Connection successful! Logged in as: " + userInfo})
}

func testPMOHandler(response http.ResponseWriter, request *http.Request, env *Env) {
	if !checkToken(response, request, env.Cfg) {
		return
	}
	result, err := handler.TestPMOConnection(env.Cfg, env.DB, env.Provider, env.Poster, requestUser(request))
	if err != nil {
		writeError(response, env.Cfg, err)
		return
	}
	writeJSON(response, http.StatusOK, result)
}

func StartEndlessRunner(env *Env) {
	// perform maintenance when receiving SIGHUP
	sighup := make(chan os.Signal, 1)
	signal.Notify(sighup, syscall.SIGHUP)
	var maintenance_mutex sync.Mutex

	go startServer(env, &maintenance_mutex)
	for {
		<-sighup
		lg.Logf("received SIGHUP, acquiring mutex lock")
		maintenance_mutex.Lock()
		lg.Logf("lock engaged")

		config.Maintenance(env.Cfg, env.DB)

		lg.Logf("unlocking mutex")
		maintenance_mutex.Unlock()
		lg.Logf("")
	}
}

func startServer(env *Env, maintenance_mutex *sync.Mutex) {
	serialized := func(h func(http.ResponseWriter, *http.Request, *Env)) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			maintenance_mutex.Lock()
			h(w, r, env)
			maintenance_mutex.Unlock()
		}
	}

	router := http.NewServeMux()
	router.HandleFunc("/settings", serialized(settingsHandler))
	router.HandleFunc("/tickets", serialized(ticketsHandler))
	router.HandleFunc("/attachments", serialized(attachmentsHandler))
	router.HandleFunc("/save", serialized(saveHandler))
	router.HandleFunc("/test/jira", serialized(testJiraHandler))
	router.HandleFunc("/test/pmo", serialized(testPMOHandler))
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(env.Cfg.Port),
		Handler: router,
	}

	lg.Logf("Running pmo_saver server on https://%s:%d using cert file '%s' and key file '%s'\n\n",
		env.Cfg.Domain, env.Cfg.Port, env.Cfg.SSLCert, env.Cfg.SSLKey)
	if err := srv.ListenAndServeTLS(env.Cfg.SSLCert, env.Cfg.SSLKey); err != nil {
		lg.Loge(env.Cfg, err)
	}
}
