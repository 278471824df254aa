package sessions

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/formlift-io/iform/internal/models"
)

var sessionManager *Manager

// Manager caches access tokens per API server so short-lived bearer
// tokens survive between CLI invocations. State lives under
// ~/.config/iform/<hostname>.yaml with owner-only permissions.
type Manager struct {
	lock    sync.Mutex
	Servers map[string]ServerSession // hostname -> ServerSession
}

type ServerSession struct {
	Version   string        `json:"version" yaml:"version"`
	Timestamp time.Time     `json:"timestamp" yaml:"timestamp"`
	Token     *models.Token `json:"token,omitempty" yaml:"token,omitempty"`
}

func (m *Manager) SetToken(server string, token *models.Token) error {

	logrus.WithFields(logrus.Fields{
		"server": server,
		"expiry": token.Expiry,
	}).Debugln("Caching access token")

	m.lock.Lock()
	m.createServerSession(server)
	session := m.Servers[server]
	session.Token = token
	m.Servers[server] = session
	m.lock.Unlock()

	return m.Commit(server)
}

// GetToken returns the cached token for the server, or an error when none
// is cached. Expiry checking is left to the caller.
func (m *Manager) GetToken(server string) (*models.Token, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.createServerSession(server)
	session := m.Servers[server]

	if session.Token == nil {
		return nil, fmt.Errorf("no cached token for server: %s", server)
	}

	return session.Token, nil
}

func (m *Manager) RemoveToken(server string) error {

	logrus.WithField("server", server).Debugln("Removing cached token")

	m.lock.Lock()
	m.createServerSession(server)
	session := m.Servers[server]
	session.Token = nil
	m.Servers[server] = session
	m.lock.Unlock()

	return m.Commit(server)
}

func (m *Manager) Commit(server string) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	file, err := openSessionFile(server)
	if err != nil {
		return err
	}
	defer file.Close()

	// Truncate the file to ensure clean write
	if err := file.Truncate(0); err != nil {
		return err
	}

	if _, err := file.Seek(0, 0); err != nil {
		return err
	}

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()

	session := m.Servers[server]
	session.Timestamp = time.Now().UTC()
	m.Servers[server] = session

	return encoder.Encode(session)
}

func (m *Manager) Load(server string) error {

	logrus.Debugln("Loading cached session for server:", server)

	m.lock.Lock()
	defer m.lock.Unlock()

	file, err := openSessionFile(server)
	if err != nil {
		return err
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		return err
	}

	if fileInfo.Size() == 0 {
		// File is empty, initialize with a fresh session
		m.Servers[server] = newServerSession()
		return nil
	}

	decoder := yaml.NewDecoder(file)
	var session ServerSession
	if err := decoder.Decode(&session); err != nil {
		// If YAML parsing fails, log the error and reinitialize
		logrus.WithError(err).Errorf("Failed to parse session file for %s, reinitializing", server)
		m.Servers[server] = newServerSession()
		return nil
	}

	m.Servers[server] = session

	return nil
}

func newServerSession() ServerSession {
	return ServerSession{
		Version:   "1.0",
		Timestamp: time.Now().UTC(),
	}
}

func (m *Manager) createServerSession(server string) {
	if _, ok := m.Servers[server]; !ok {
		m.Servers[server] = newServerSession()
	}
}

func init() {
	sessionManager = &Manager{
		Servers: make(map[string]ServerSession),
	}
}

func GetSessionManager() *Manager {
	return sessionManager
}

// sessionDir is overridable so tests can redirect the cache away from the
// real home directory.
var sessionDir = func() (string, error) {
	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get current user: %w", err)
	}
	return filepath.Join(usr.HomeDir, ".config", "iform"), nil
}

// SetSessionDir redirects session storage, returning a restore function.
func SetSessionDir(dir string) func() {
	previous := sessionDir
	sessionDir = func() (string, error) { return dir, nil }
	return func() { sessionDir = previous }
}

func openSessionFile(server string) (*os.File, error) {

	dir, err := sessionDir()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create session directory: %w", err)
		}
	}

	// Only allow read/write access to the owner
	file, err := os.OpenFile(
		filepath.Join(dir, fmt.Sprintf("%s.yaml", server)), os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open session file: %w", err)
	}
	return file, nil
}
