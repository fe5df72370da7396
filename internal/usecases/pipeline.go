package usecases

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"subtitle-translator/internal/domain/entities"
	"subtitle-translator/internal/domain/repositories"
	"subtitle-translator/pkg/config"
	"subtitle-translator/pkg/srt"
)

// The pipeline depends on four narrow collaborator signatures and never on
// their implementations.

type Prober interface {
	Probe(ctx context.Context, path string) ([]entities.StreamInfo, error)
}

type Extractor interface {
	Extract(ctx context.Context, path string, streamIndex int) (string, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// AudioToolkit covers the intermediate audio steps of the transcribe path.
type AudioToolkit interface {
	ExtractAudio(ctx context.Context, videoPath, outputPath string) error
	SplitAudio(ctx context.Context, audioPath string, segmentSeconds int, outputDir string) ([]string, error)
}

// Pipeline drives each task through its state machine. Every task runs in its
// own goroutine; all cross-task coordination goes through the task repository.
type Pipeline struct {
	repo        repositories.TaskRepository
	storage     repositories.StorageStrategy
	prober      Prober
	extractor   Extractor
	transcriber Transcriber
	translator  Translator
	audio       AudioToolkit
	cfg         config.PipelineConfig
	tempDir     string
	targetLang  string
}

func NewPipeline(
	repo repositories.TaskRepository,
	storage repositories.StorageStrategy,
	prober Prober,
	extractor Extractor,
	transcriber Transcriber,
	translator Translator,
	audio AudioToolkit,
	cfg config.PipelineConfig,
	tempDir string,
	targetLang string,
) *Pipeline {
	return &Pipeline{
		repo:        repo,
		storage:     storage,
		prober:      prober,
		extractor:   extractor,
		transcriber: transcriber,
		translator:  translator,
		audio:       audio,
		cfg:         cfg,
		tempDir:     tempDir,
		targetLang:  targetLang,
	}
}

// Analyze runs the probe stage: Uploaded -> Probing -> AwaitingSelection,
// or Failed(probe). Called in its own goroutine right after upload.
func (p *Pipeline) Analyze(taskID string) {
	task, err := p.transition(taskID, entities.StateUploaded, entities.StateProbing)
	if err != nil {
		log.Printf("Task %s: cannot start probe: %v", taskID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.StageTimeout)
	defer cancel()

	streams, err := p.prober.Probe(ctx, task.SourcePath)
	if err != nil {
		p.fail(taskID, entities.StageProbe, err)
		return
	}

	_, err = p.repo.Update(taskID, func(t *entities.Task) error {
		if t.State != entities.StateProbing {
			return fmt.Errorf("unexpected state %s during probe", t.State)
		}
		t.Streams = streams
		t.State = entities.StateAwaitingSelection
		t.Progress = 0
		return nil
	})
	if err != nil {
		log.Printf("Task %s: could not record probe result: %v", taskID, err)
		return
	}
	log.Printf("Task %s: probe found %d streams, awaiting selection", taskID, len(streams))
}

// Process runs the selected path for a queued task. Invoked by a pool worker;
// the Queued -> Processing transition here is the admission point.
func (p *Pipeline) Process(taskID string) {
	task, err := p.transition(taskID, entities.StateQueued, entities.StateProcessing)
	if err != nil {
		log.Printf("Task %s: cannot start processing: %v", taskID, err)
		return
	}
	if task.Selection == nil {
		p.fail(taskID, entities.StageExtract, fmt.Errorf("task has no selection"))
		return
	}

	var rawSubtitles string
	switch task.Selection.Mode {
	case entities.ModeExtract:
		rawSubtitles, err = p.runExtract(taskID, task)
		if err != nil {
			p.fail(taskID, entities.StageExtract, err)
			return
		}
	case entities.ModeTranscribe:
		rawSubtitles, err = p.runTranscribe(taskID, task)
		if err != nil {
			p.fail(taskID, entities.StageTranscribe, err)
			return
		}
	default:
		p.fail(taskID, entities.StageExtract, fmt.Errorf("unknown mode %q", task.Selection.Mode))
		return
	}

	if _, err := p.transition(taskID, entities.StateProcessing, entities.StateTranslating); err != nil {
		log.Printf("Task %s: cannot enter translation: %v", taskID, err)
		return
	}

	resultPath, err := p.runTranslate(taskID, task, rawSubtitles)
	if err != nil {
		p.fail(taskID, entities.StageTranslate, err)
		return
	}

	_, err = p.repo.Update(taskID, func(t *entities.Task) error {
		if t.State != entities.StateTranslating {
			return fmt.Errorf("unexpected state %s at completion", t.State)
		}
		t.State = entities.StateCompleted
		t.ResultPath = resultPath
		t.Progress = 100
		return nil
	})
	if err != nil {
		log.Printf("Task %s: could not record completion: %v", taskID, err)
		return
	}
	log.Printf("Task %s: completed, result at %s", taskID, resultPath)
}

// runExtract pulls the selected subtitle stream. Extraction is near
// instantaneous, so progress is reported as a single jump.
func (p *Pipeline) runExtract(taskID string, task entities.Task) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.StageTimeout)
	defer cancel()

	content, err := p.extractor.Extract(ctx, task.SourcePath, task.Selection.StreamIndex)
	if err != nil {
		return "", err
	}
	p.setProgress(taskID, entities.StateProcessing, 100)
	return content, nil
}

// runTranscribe extracts the audio track, splits it into fixed-length chunks
// and transcribes the chunks with bounded parallelism. Chunk results are
// shifted by their offset and merged into one SRT sequence.
func (p *Pipeline) runTranscribe(taskID string, task entities.Task) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.StageTimeout)
	defer cancel()

	audioPath := filepath.Join(p.tempDir, taskID+".mp3")
	if err := p.audio.ExtractAudio(ctx, task.SourcePath, audioPath); err != nil {
		return "", err
	}
	defer os.Remove(audioPath)
	p.setProgress(taskID, entities.StateProcessing, 10)

	chunkDir := filepath.Join(p.tempDir, taskID+"_chunks")
	chunks, err := p.audio.SplitAudio(ctx, audioPath, p.cfg.SegmentSeconds, chunkDir)
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(chunkDir)
	if len(chunks) == 0 {
		return "", fmt.Errorf("audio split produced no chunks")
	}
	p.setProgress(taskID, entities.StateProcessing, 20)

	parts := make([]string, len(chunks))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	sem := make(chan struct{}, max(1, p.cfg.TranscribeParallel))

	for i, chunkPath := range chunks {
		wg.Add(1)
		go func(i int, chunkPath string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := p.transcriber.Transcribe(ctx, chunkPath)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("chunk %d: %w", i, err)
				}
				return
			}
			parts[i] = text
			done++
			// 20 -> 95 as chunks finish
			p.setProgress(taskID, entities.StateProcessing, 20+done*75/len(chunks))
		}(i, chunkPath)
	}
	wg.Wait()

	if firstErr != nil {
		return "", firstErr
	}
	return srt.Merge(parts, p.cfg.SegmentSeconds), nil
}

// runTranslate splits the subtitles into cue batches, translates them with
// bounded parallelism and persists the reassembled result.
func (p *Pipeline) runTranslate(taskID string, task entities.Task, rawSubtitles string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.cfg.StageTimeout)
	defer cancel()

	blocks := srt.SplitBlocks(rawSubtitles)
	if len(blocks) == 0 {
		return "", fmt.Errorf("no subtitle cues to translate")
	}
	chunks := srt.Chunk(blocks, p.cfg.TranslateChunkSize)

	translated := make([]string, len(chunks))
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	sem := make(chan struct{}, max(1, p.cfg.TranslateParallel))

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			text, err := p.translator.Translate(ctx, strings.Join(chunk, "\n\n"), p.targetLang)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("chunk %d: %w", i, err)
				}
				return
			}
			translated[i] = text
			done++
			p.setProgress(taskID, entities.StateTranslating, done*95/len(chunks))
		}(i, chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return "", firstErr
	}

	base := strings.TrimSuffix(task.Filename, filepath.Ext(task.Filename))
	resultName := fmt.Sprintf("%s.%s.srt", base, p.targetLang)
	content := strings.Join(translated, "\n\n") + "\n"

	resultPath, err := p.storage.Save(resultName, strings.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("could not save result: %w", err)
	}
	return resultPath, nil
}

// transition moves a task from one exact state to the next, resetting the
// phase progress to zero.
func (p *Pipeline) transition(taskID string, from, to entities.State) (entities.Task, error) {
	return p.repo.Update(taskID, func(t *entities.Task) error {
		if t.State != from {
			return fmt.Errorf("task is %s, expected %s", t.State, from)
		}
		t.State = to
		t.Progress = 0
		return nil
	})
}

// setProgress raises the task's progress within the given phase. Progress is
// clamped to [0,100] and never regresses; reports for a stale phase are
// dropped.
func (p *Pipeline) setProgress(taskID string, phase entities.State, progress int) {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}
	_, err := p.repo.Update(taskID, func(t *entities.Task) error {
		if t.State != phase {
			return fmt.Errorf("stale progress report for phase %s", phase)
		}
		if progress > t.Progress {
			t.Progress = progress
		}
		return nil
	})
	if err != nil {
		log.Printf("Task %s: progress update skipped: %v", taskID, err)
	}
}

// fail records a terminal stage failure. Failures are isolated per task and
// only ever surfaced through polling.
func (p *Pipeline) fail(taskID string, stage entities.Stage, cause error) {
	_, err := p.repo.Update(taskID, func(t *entities.Task) error {
		if t.Terminal() {
			return fmt.Errorf("task already terminal")
		}
		t.State = entities.StateFailed
		t.FailedStage = stage
		t.ErrorDetail = cause.Error()
		return nil
	})
	if err != nil {
		log.Printf("Task %s: could not record %s failure: %v", taskID, stage, err)
		return
	}
	log.Printf("Task %s: %s stage failed: %v", taskID, stage, cause)
}
