package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cedar/internal/driver"
	"cedar/internal/pipeline"
	"cedar/internal/source"
	"cedar/internal/ui"
)

type checkFileOutcome struct {
	result *driver.Result
	err    error
}

type checkDirOutcome struct {
	fileSet *source.FileSet
	results []*driver.Result
	err     error
}

func runCheckFileWithUI(ctx context.Context, title, path string, opts driver.Options) (*source.FileSet, *driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkFileOutcome, 1)

	// Воркер единственный пишет в fileSet; канал outcome упорядочивает доступ.
	fileSet := source.NewFileSet()
	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		res, err := driver.Check(ctx, fileSet, path, optsCopy)
		outcomeCh <- checkFileOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, []string{path}, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return fileSet, outcome.result, uiErr
	}
	return fileSet, outcome.result, outcome.err
}

func runCheckDirWithUI(ctx context.Context, title, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []*driver.Result, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan checkDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = pipeline.ChannelSink{Ch: events}
		fileSet, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkDirOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
