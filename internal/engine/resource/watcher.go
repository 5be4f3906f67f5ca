package resource

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/sceneview/internal/engine/arena"
)

// Watcher reloads file-backed shaders when their sources change. Events
// arrive on a background goroutine and only mark shaders dirty; Apply
// performs the reload and must run on the render thread between frames.
type Watcher struct {
	mgr *Manager
	log *zap.Logger
	fsw *fsnotify.Watcher

	mu      sync.Mutex
	files   map[string][]ShaderID // cleaned path -> shaders reading it
	dirs    map[string]bool
	pending map[ShaderID]bool

	done chan struct{}
	wg   sync.WaitGroup
}

// Watch starts a watcher covering every shader loaded with LoadShaderFiles
// so far. Shaders loaded later can be added with Add.
func (m *Manager) Watch() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}
	w := &Watcher{
		mgr:     m,
		log:     m.log.Named("watch"),
		fsw:     fsw,
		files:   make(map[string][]ShaderID),
		dirs:    make(map[string]bool),
		pending: make(map[ShaderID]bool),
		done:    make(chan struct{}),
	}

	var ids []ShaderID
	m.shaders.Each(func(h arena.Handle, s *Shader) bool {
		if s.vertexPath != "" {
			ids = append(ids, ShaderID(h))
		}
		return true
	})
	for _, id := range ids {
		if err := w.Add(id); err != nil {
			fsw.Close()
			return nil, err
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Add starts watching the source files of a file-backed shader.
func (w *Watcher) Add(id ShaderID) error {
	s, err := w.mgr.Shader(id)
	if err != nil {
		return err
	}
	if s.vertexPath == "" {
		return fmt.Errorf("shader %q was not loaded from files", s.Name)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, p := range []string{s.vertexPath, s.fragmentPath} {
		p = filepath.Clean(p)
		w.files[p] = append(w.files[p], id)

		// Editors often replace files by rename, so watch the directory.
		dir := filepath.Dir(p)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	return nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.mark(filepath.Clean(event.Name))
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) mark(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, id := range w.files[path] {
		if !w.pending[id] {
			w.log.Debug("shader source changed", zap.String("file", path))
		}
		w.pending[id] = true
	}
}

// Pending returns how many shaders await reload.
func (w *Watcher) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Apply reloads every shader whose sources changed and returns how many
// were recompiled. A shader that fails to compile keeps its previous
// program; the failure is logged.
func (w *Watcher) Apply() int {
	w.mu.Lock()
	ids := make([]ShaderID, 0, len(w.pending))
	for id := range w.pending {
		ids = append(ids, id)
	}
	clear(w.pending)
	w.mu.Unlock()

	reloaded := 0
	for _, id := range ids {
		s, err := w.mgr.Shader(id)
		if err != nil {
			continue
		}
		vs, fs, err := readShaderFiles(s.vertexPath, s.fragmentPath)
		if err == nil {
			err = w.mgr.ReloadShader(id, vs, fs)
		}
		if err != nil {
			w.log.Error("shader reload failed", zap.String("name", s.Name), zap.Error(err))
			continue
		}
		reloaded++
	}
	return reloaded
}

// Close stops watching.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()
	return err
}
