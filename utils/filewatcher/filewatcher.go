package filewatcher

import (
	"log"
	"os"
	"time"
)

// DefaultPollInterval is how often the watched file's stat is compared.
const DefaultPollInterval = 1 * time.Second

type FileWatcher struct {
	Filepath          string        // File to watch for changes.
	ChangeTriggerChan chan uint64   // Channel which holds a counter of file changes. Closed once the watcher stops.
	PollInterval      time.Duration // Stat polling interval.
	stop              chan struct{} // Closed to break the watcher's loop.
	successfulClose   chan struct{} // Closed on a successful go routine exit.
}

func watchFile(fw *FileWatcher) {
	defer close(fw.successfulClose)
	defer close(fw.ChangeTriggerChan)

	initialStat, err := os.Stat(fw.Filepath)
	changeCounter := uint64(0)
	if err != nil {
		log.Printf("failed to watch file '%s': %v", fw.Filepath, err)
		return
	}

	ticker := time.NewTicker(fw.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-fw.stop:
			return
		case <-ticker.C:
		}

		stat, err := os.Stat(fw.Filepath)
		if err != nil {
			// The file may be mid-replace by an editor, try again next tick.
			log.Printf("failed to get file '%s''s stat: %v", fw.Filepath, err)
			continue
		}

		if stat.Size() != initialStat.Size() || stat.ModTime() != initialStat.ModTime() {
			changeCounter++
			initialStat = stat

			select {
			case fw.ChangeTriggerChan <- changeCounter:
			case <-fw.stop:
				return
			}
		}
	}
}

// NewFileWatcher starts watching filepath with the default poll interval.
func NewFileWatcher(filepath string) *FileWatcher {
	return NewFileWatcherWithInterval(filepath, DefaultPollInterval)
}

// NewFileWatcherWithInterval starts watching filepath, comparing its stat every interval.
func NewFileWatcherWithInterval(filepath string, interval time.Duration) *FileWatcher {
	fw := FileWatcher{
		Filepath:          filepath,
		PollInterval:      interval,
		ChangeTriggerChan: make(chan uint64),
		stop:              make(chan struct{}),
		successfulClose:   make(chan struct{}),
	}

	go watchFile(&fw)
	return &fw
}

// Close stops the watcher and waits for its go routine to exit. Safe to call more than once.
func (fw *FileWatcher) Close() {
	select {
	case <-fw.stop:
	default:
		close(fw.stop)
	}
	<-fw.successfulClose
}
