package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"sled/internal/driver"
	"sled/internal/source"
	"sled/internal/ui"
)

type scanOutcome struct {
	fileSet *source.FileSet
	results []*driver.Result
	err     error
}

// scanDirWithProgress запускает ScanDir в фоне и рисует прогресс через
// Bubble Tea, пока канал событий не закроется.
func scanDirWithProgress(ctx context.Context, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fileSet, results, err := driver.ScanDir(ctx, dir, optsCopy)
		outcomeCh <- scanOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("scanning "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
