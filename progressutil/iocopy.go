// Copyright 2016 CoreOS Inc
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package progressutil prints live progress bars for one or more
// concurrent io.Copy-style transfers, the way zipperd's decode subcommand
// reports the progress of writing its output file to a terminal.
package progressutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ErrAlreadyStarted is returned by AddCopy once PrintAndWait has been
// called, and by a second concurrent call to PrintAndWait itself.
var ErrAlreadyStarted = errors.New("progressutil: printer already started")

type copyJob struct {
	name    string
	size    int64
	written int64 // atomic

	r   io.Reader
	w   io.Writer
	err error
}

type printBarParams struct {
	width int
	// printToTTYAlways forces live, cursor-repositioning output even when
	// the destination isn't a terminal; tests set this so they can assert
	// against a bytes.Buffer.
	printToTTYAlways bool
}

// CopyProgressPrinter copies one or more readers to their paired writers
// while periodically printing a progress bar per copy.
type CopyProgressPrinter struct {
	mu      sync.Mutex
	jobs    []*copyJob
	started bool
	pbp     printBarParams
}

// NewCopyProgressPrinter returns a printer ready to accept copies via
// AddCopy.
func NewCopyProgressPrinter() *CopyProgressPrinter {
	return &CopyProgressPrinter{pbp: printBarParams{width: 80}}
}

// AddCopy registers a copy from r to w, labeled name, with the given total
// size in bytes used to compute the progress fraction. It must be called
// before PrintAndWait.
func (cpp *CopyProgressPrinter) AddCopy(r io.Reader, name string, size int64, w io.Writer) error {
	cpp.mu.Lock()
	defer cpp.mu.Unlock()
	if cpp.started {
		return ErrAlreadyStarted
	}
	cpp.jobs = append(cpp.jobs, &copyJob{r: r, w: w, name: name, size: size})
	return nil
}

// PrintAndWait runs every registered copy concurrently, printing progress
// to out every interval, until all copies finish or cancel is signaled. It
// returns the first copy error encountered, or nil. Calling it a second
// time, or calling AddCopy after it has started, returns ErrAlreadyStarted.
func (cpp *CopyProgressPrinter) PrintAndWait(out io.Writer, interval time.Duration, cancel chan struct{}) error {
	cpp.mu.Lock()
	if cpp.started {
		cpp.mu.Unlock()
		return ErrAlreadyStarted
	}
	cpp.started = true
	jobs := cpp.jobs
	cpp.mu.Unlock()

	live := cpp.pbp.printToTTYAlways || isTerminalWriter(out)

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		wg.Add(len(jobs))
		for _, j := range jobs {
			j := j
			go func() {
				defer wg.Done()
				j.err = copyWithProgress(j)
			}()
		}
		wg.Wait()
		close(done)
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	linesPrinted := 0
	print := func() {
		var buf bytes.Buffer
		if live && linesPrinted > 0 {
			fmt.Fprintf(&buf, "\033[%dA", linesPrinted)
		}
		for _, j := range jobs {
			written := atomic.LoadInt64(&j.written)
			var frac float64
			if j.size > 0 {
				frac = float64(written) / float64(j.size)
			}
			sizeString := ByteUnitStr(written) + " / " + ByteUnitStr(j.size)
			buf.WriteString(renderBar(cpp.pbp.width, j.name, frac, sizeString))
			buf.WriteByte('\n')
		}
		out.Write(buf.Bytes())
		linesPrinted = len(jobs)
	}

	for {
		select {
		case <-ticker.C:
			print()
		case <-done:
			print()
			return firstJobErr(jobs)
		case <-cancel:
			return nil
		}
	}
}

func copyWithProgress(j *copyJob) error {
	buf := make([]byte, 32*1024)
	for {
		n, rerr := j.r.Read(buf)
		if n > 0 {
			if _, werr := j.w.Write(buf[:n]); werr != nil {
				return werr
			}
			atomic.AddInt64(&j.written, int64(n))
		}
		if rerr == io.EOF {
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}

func firstJobErr(jobs []*copyJob) error {
	for _, j := range jobs {
		if j.err != nil {
			return j.err
		}
	}
	return nil
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// renderBar renders a single progress bar line of the given total width,
// e.g. "download 75 B / 150 B [=======>          ]".
func renderBar(width int, name string, frac float64, sizeString string) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	label := name + " " + sizeString
	barWidth := width - len(label) - len(" []")
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(frac * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	var bar strings.Builder
	bar.WriteString(strings.Repeat("=", filled))
	if filled < barWidth {
		bar.WriteByte('>')
		bar.WriteString(strings.Repeat(" ", barWidth-filled-1))
	}
	return label + " [" + bar.String() + "]"
}

// ByteUnitStr formats n bytes using binary (1024-based) unit suffixes, e.g.
// 1536 -> "1.5 KiB".
func ByteUnitStr(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
