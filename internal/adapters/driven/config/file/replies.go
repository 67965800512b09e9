package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/factotum-labs/factotum-cli/internal/core/domain"
	"github.com/factotum-labs/factotum-cli/internal/core/ports/driven"
	"github.com/factotum-labs/factotum-cli/internal/logger"
)

// Ensure ReplyStore implements the interface.
var _ driven.ReplyStore = (*ReplyStore)(nil)

// repliesFile is the name of the user-editable reply file inside the
// factotum config directory.
const repliesFile = "replies.json"

// defaultReplies contains the embedded reply sets. They are used when
// the user file does not exist and as the initial content of a new
// file, so users have something concrete to edit.
var defaultReplies = map[domain.ReplyCategory][]string{
	domain.ReplyGreeting: {
		"Saludos, Su Majestad. ¿En qué puedo servirle hoy?",
		"A sus órdenes, Mi Rey. ¿Cómo puedo asistirle?",
		"Es un honor atenderle, Su Majestad. Estoy a su disposición.",
	},
	domain.ReplyFarewell: {
		"Ha sido un honor servirle, Su Majestad. Estaré aquí cuando me necesite.",
		"Que tenga un excelente día, Mi Rey. Quedo a su disposición.",
		"Me retiro a su orden, Su Majestad. Regresaré cuando lo solicite.",
	},
	domain.ReplyUnknown: {
		"Lamento no comprender completamente su solicitud, Su Majestad. ¿Podría reformularla?",
		"Mi Rey, me temo que necesito más información para procesar adecuadamente su petición.",
		"Su Majestad, permítame solicitar una aclaración para poder servirle mejor.",
	},
	domain.ReplyAcknowledgment: {
		"Entendido, Su Majestad.",
		"A sus órdenes, Mi Rey.",
		"Comprendido perfectamente, Su Alteza.",
	},
}

// ReplyStore loads the predefined reply sets from a user-editable JSON
// file with fallback to embedded defaults.
//
// Initialisation is lazy: the file is only created on first access,
// not in the constructor.
type ReplyStore struct {
	mu       sync.RWMutex
	dir      string
	cache    map[domain.ReplyCategory][]string
	initOnce sync.Once
	initErr  error
}

// NewReplyStore creates a new file-based reply store.
// If configDir is empty, defaults to ~/.factotum/.
//
// The constructor does not perform any I/O - directory creation and
// the default file write happen lazily on first Replies() call.
func NewReplyStore(configDir string) (*ReplyStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".factotum")
	}

	return &ReplyStore{dir: configDir}, nil
}

// Replies returns the alternatives for a category.
// On first call, initialises the config directory and writes the
// default file if missing. Falls back to the embedded defaults when
// the file cannot be read.
func (s *ReplyStore) Replies(category domain.ReplyCategory) ([]string, error) {
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: reply category %q", domain.ErrInvalidInput, category)
	}

	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		logger.Error("Reply store init failed, using embedded defaults: %v", s.initErr)
		return cloneReplies(defaultReplies[category])
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cache != nil {
		return cloneReplies(s.cache[category])
	}
	return cloneReplies(defaultReplies[category])
}

// Reload re-reads the reply file, replacing the cached sets. A broken
// file keeps the previous snapshot.
func (s *ReplyStore) Reload() error {
	loaded, err := s.loadFromFile()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache = loaded
	s.mu.Unlock()
	return nil
}

// Path returns the reply file path.
func (s *ReplyStore) Path() string {
	return filepath.Join(s.dir, repliesFile)
}

// Watch reloads the reply sets whenever the file changes on disk.
// Blocks until ctx is cancelled; intended to run in its own goroutine
// behind long-lived surfaces like the TUI.
func (s *ReplyStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files by
	// rename, which drops a watch placed on the file itself.
	if err := watcher.Add(s.dir); err != nil {
		return fmt.Errorf("watch %s: %w", s.dir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != repliesFile {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				logger.Warn("Reply reload failed: %v", err)
				continue
			}
			logger.Info("Reloaded replies from %s", event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Reply watcher error: %v", err)
		}
	}
}

// initialise creates the config directory and the default reply file,
// then fills the cache. Called once via sync.Once on first Replies().
func (s *ReplyStore) initialise() {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}

	path := s.Path()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		data, err := json.MarshalIndent(defaultReplies, "", "  ")
		if err != nil {
			s.initErr = fmt.Errorf("encode default replies: %w", err)
			return
		}
		if err := os.WriteFile(path, data, 0600); err != nil {
			s.initErr = fmt.Errorf("create default replies: %w", err)
			return
		}
	}

	loaded, err := s.loadFromFile()
	if err != nil {
		s.initErr = err
		return
	}
	s.cache = loaded
}

// loadFromFile reads and decodes the reply file.
func (s *ReplyStore) loadFromFile() (map[domain.ReplyCategory][]string, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, fmt.Errorf("read replies: %w", err)
	}

	var loaded map[domain.ReplyCategory][]string
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("decode replies: %w", err)
	}
	return loaded, nil
}

// cloneReplies copies the alternatives so callers cannot mutate the
// cache. An empty set is an error: the resolver needs something to say.
func cloneReplies(alternatives []string) ([]string, error) {
	if len(alternatives) == 0 {
		return nil, domain.ErrReplySetEmpty
	}
	return append([]string(nil), alternatives...), nil
}
