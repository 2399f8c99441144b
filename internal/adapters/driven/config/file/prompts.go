package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/quarrylabs/quarry-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from a user-editable prompts.toml file.
// Missing entries fall back to embedded defaults.
//
// The store uses lazy initialisation - the file is only created when first
// accessed, not in the constructor. This makes testing easier and avoids
// unexpected I/O.
type PromptStore struct {
	mu       sync.RWMutex
	filePath string
	cache    map[string]string
	initOnce sync.Once
	initErr  error
}

// defaultPrompts contains embedded default prompts.
// These are used when user entries don't exist and as the initial content
// of a freshly created prompts.toml.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptGrounded: `You are a careful assistant answering questions from a private document collection.
Answer the question using ONLY the numbered context blocks below. Every factual
statement must be supported by the context; cite the supporting blocks inline
like [1] or [2][3]. Do not use outside knowledge. If the context does not
contain the information needed, reply exactly:
Based on the provided context, there is no information available to answer this question.

Context:
%s

Question: %s

Answer:`,

	driven.PromptSummarise: `Summarise the following content in %d characters or less.
Be concise and capture the key points.

Content:
%s

Summary:`,

	driven.PromptTags: `List up to five short topic tags for the following content.
Return ONLY a comma-separated list of lowercase tags, nothing else.

Content:
%s

Tags:`,

	driven.PromptClassify: `Classify the following content into exactly one category:
report, article, notes, correspondence, reference, code, or other.
Return ONLY the category word, nothing else.

Content:
%s

Category:`,
}

// promptsFileHeader explains the file to users who open it.
const promptsFileHeader = `# Quarry prompt templates.
#
# Edit any entry to customise LLM behaviour. Changes take effect on the
# next command. Templates use Go fmt placeholders (%s, %d); keep them in
# the same positions when editing. Delete an entry to restore the
# built-in default.

`

// NewPromptStore creates a new file-based prompt store.
// If configDir is empty, defaults to ~/.quarry/prompts.toml.
//
// The constructor does not perform any I/O - directory creation and the
// initial file write happen lazily on first Load() call.
func NewPromptStore(configDir string) (*PromptStore, error) {
	dir, err := stateDir(configDir)
	if err != nil {
		return nil, err
	}

	return &PromptStore{
		filePath: filepath.Join(dir, "prompts.toml"),
		cache:    make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises prompts.toml with the defaults.
// Returns the cached value if available, otherwise reads the file.
// Falls back to the embedded default when the entry is missing.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure the file with defaults exists (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	prompt, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return prompt, nil
	}

	// Cache miss: read the whole file (no lock held during I/O)
	loaded, err := s.readFile()
	if err == nil {
		s.mu.Lock()
		for k, v := range loaded {
			s.cache[k] = v
		}
		prompt, ok = s.cache[name]
		s.mu.Unlock()
		if ok {
			return prompt, nil
		}
	}

	// Fall back to embedded default
	if defaultPrompt, ok := defaultPrompts[name]; ok {
		return defaultPrompt, nil
	}
	return "", fmt.Errorf("load prompt %q: unknown prompt", name)
}

// Reload clears the prompt cache, forcing a fresh read from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Path returns the prompts file path.
func (s *PromptStore) Path() string {
	return s.filePath
}

// initialise creates the prompts file with default content.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		s.initErr = fmt.Errorf("create config directory: %w", err)
		return
	}

	// Create the defaults file only if it doesn't exist
	if _, err := os.Stat(s.filePath); os.IsNotExist(err) {
		data, err := toml.Marshal(defaultPrompts)
		if err != nil {
			s.initErr = fmt.Errorf("marshal default prompts: %w", err)
			return
		}
		content := append([]byte(promptsFileHeader), data...)
		if err := os.WriteFile(s.filePath, content, 0600); err != nil {
			s.initErr = fmt.Errorf("create default prompts file: %w", err)
			return
		}
	}
}

// readFile parses prompts.toml into a name-to-template map.
func (s *PromptStore) readFile() (map[string]string, error) {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return nil, err
	}

	var loaded map[string]string
	if err := toml.Unmarshal(data, &loaded); err != nil {
		return nil, err
	}

	for name, prompt := range loaded {
		loaded[name] = strings.TrimSpace(prompt)
	}
	return loaded, nil
}
