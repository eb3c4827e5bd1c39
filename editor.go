package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/chromagate/common"
	"github.com/milk9111/chromagate/levels"
	"github.com/milk9111/chromagate/prefabs"
	"github.com/milk9111/chromagate/session"
	"golang.design/x/clipboard"
)

// EditorSync connects the running game to files on disk. Tab toggles between
// editing and play-testing, file changes repopulate the level, Ctrl+C copies
// the level JSON and Ctrl+S writes the level to the levels directory.
type EditorSync struct {
	session *session.Session
	watcher *prefabs.Watcher

	clipboardReady bool
	status         string
}

func NewEditorSync(s *session.Session) (*EditorSync, error) {
	e := &EditorSync{session: s}

	w, err := prefabs.NewWatcher(levels.Dir, prefabs.Dir)
	if err != nil {
		log.Printf("editor: hot reload disabled: %v", err)
	} else {
		e.watcher = w
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("editor: clipboard unavailable: %v", err)
	} else {
		e.clipboardReady = true
	}
	return e, nil
}

func (e *EditorSync) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		switch e.session.State().State {
		case session.StateEditor:
			e.session.Request(session.To(session.StateGame))
		case session.StateGame:
			e.session.Request(session.To(session.StateEditor))
		}
	}

	if e.watcher != nil {
		e.drainWatcher()
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyC) {
		e.copyLevel()
	}
	if ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.saveLevel()
	}
}

func (e *EditorSync) drainWatcher() {
	changed := false
	for {
		select {
		case change, ok := <-e.watcher.Events:
			if !ok {
				e.watcher = nil
				return
			}
			if e.affectsLevel(change) {
				log.Printf("editor: %s %s changed", change.Kind, change.Path)
				changed = true
			}
			continue
		case err, ok := <-e.watcher.Errors:
			if !ok {
				e.watcher = nil
				return
			}
			log.Printf("editor: watch: %v", err)
			continue
		default:
		}
		break
	}
	if changed {
		e.session.Reload()
		e.status = "reloaded"
	}
}

// affectsLevel reports whether change can alter the level on screen. Every
// prefab does; only the current level's own file does.
func (e *EditorSync) affectsLevel(change prefabs.Change) bool {
	if change.Kind == prefabs.ChangeSpec {
		return true
	}
	return filepath.Base(change.Path) == e.session.Progress().CurrentLevel
}

func (e *EditorSync) copyLevel() {
	name := e.session.Progress().CurrentLevel
	if name == "" {
		e.status = "no level to copy"
		return
	}
	if !e.clipboardReady {
		e.status = "clipboard unavailable"
		return
	}

	lvl, err := levels.LoadLevel(name)
	if err != nil {
		log.Printf("editor: copy: %v", err)
		e.status = "copy failed"
		return
	}
	data, err := levels.Encode(lvl)
	if err != nil {
		log.Printf("editor: copy: %v", err)
		e.status = "copy failed"
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	e.status = fmt.Sprintf("copied %s", name)
}

func (e *EditorSync) saveLevel() {
	name := e.session.Progress().CurrentLevel
	if name == "" {
		e.status = "no level to save"
		return
	}
	path, err := levels.Export(name)
	if err != nil {
		log.Printf("editor: save: %v", err)
		e.status = "save failed"
		return
	}
	e.status = fmt.Sprintf("saved %s", path)
}

func (e *EditorSync) Draw(screen *ebiten.Image) {
	msg := fmt.Sprintf("[%s] %s  Tab: play/edit  Ctrl+C: copy  Ctrl+S: save", e.session.State(), e.session.Progress().CurrentLevel)
	if e.status != "" {
		msg += "  " + e.status
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, common.BaseHeight-20)
}

func (e *EditorSync) Close() {
	if e.watcher != nil {
		_ = e.watcher.Close()
	}
}
