// Command termframe-demo runs an animated full-screen demo of the
// rendering engine: a drifting color field, moving text, and a live
// FPS readout. Quit with q or Ctrl+C.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"time"

	"github.com/lixenwraith/termframe/ansi"
	"github.com/lixenwraith/termframe/capture"
	"github.com/lixenwraith/termframe/config"
	"github.com/lixenwraith/termframe/render"
	"github.com/lixenwraith/termframe/terminal"
)

func main() {
	configPath := flag.String("config", "", "TOML config file")
	fps := flag.Float64("fps", 0, "override target frame rate")
	capturePath := flag.String("capture", "", "record frames to a SQLite file")
	flag.Parse()

	opts := config.Default()
	if *configPath != "" {
		var err error
		opts, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *fps > 0 {
		opts.FPS = *fps
	}
	if *capturePath != "" {
		opts.Capture.Enabled = true
		opts.Capture.Path = *capturePath
	}

	if err := run(opts); err != nil && err != context.Canceled {
		log.Fatal(err)
	}
}

func run(opts config.Options) error {
	enc := ansi.Enc7Bit
	if opts.Encoding == "8bit" {
		enc = ansi.Enc8Bit
	}

	renderOpts := []render.Option{
		render.WithEncoding(enc),
		render.WithRunThreshold(opts.RunThreshold),
	}

	var recorder *capture.Recorder
	if opts.Capture.Enabled {
		var err error
		recorder, err = capture.NewRecorder(capture.DefaultConfig(opts.Capture.Path))
		if err != nil {
			return err
		}
		defer recorder.Close()
		renderOpts = append(renderOpts, render.WithFrameHook(recorder.Hook()))
	}

	r, err := render.New(terminal.NewDevice(), renderOpts...)
	if err != nil {
		return err
	}
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		for ev := range r.Events() {
			switch ev.Type {
			case terminal.EventKey:
				if ev.Rune == 'q' || ev.Rune == 0x03 {
					cancel()
					return
				}
				if ev.Rune == 'p' {
					r.Pause()
				}
				if ev.Rune == 'r' {
					r.Resume()
				}
			case terminal.EventClosed:
				cancel()
				return
			}
		}
	}()

	var phase float64
	return r.Rendering(ctx, opts.FPS, func(frame *render.Frame) error {
		phase += 0.05
		drawField(frame.Buffer, phase)
		drawStatus(frame.Buffer, r)
		return nil
	})
}

// drawField paints a drifting plasma across the whole surface.
func drawField(buf *render.Buffer, phase float64) {
	size := buf.Size()
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			v := math.Sin(float64(x)/9+phase) + math.Cos(float64(y)/5-phase/2)
			shade := uint8((v + 2) / 4 * 255)
			style := render.DefaultStyle.
				WithBackground(ansi.RGBColor(shade/3, shade/2, shade))
			buf.Set(render.Position{Row: y + 1, Col: x + 1},
				render.Cell{Rune: ' ', Style: style})
		}
	}

	msg := " termframe "
	row := size.Height/2 + 1
	col := int(float64(size.Width)/2+math.Sin(phase)*float64(size.Width)/4) - len(msg)/2
	if col < 1 {
		col = 1
	}
	style := render.DefaultStyle.
		WithForeground(ansi.ANSI(ansi.White, ansi.Bright)).
		WithBackground(ansi.RGBColor(32, 32, 48)).
		Bold(true)
	buf.WriteString(msg, render.Position{Row: row, Col: col}, style)
}

// drawStatus writes the profiler readout on the top line.
func drawStatus(buf *render.Buffer, r *render.Renderer) {
	stats := r.Statistics()
	fps := 0.0
	if stats.Average > 0 {
		fps = float64(time.Second) / float64(stats.Average)
	}
	line := fmt.Sprintf(" %5.1f fps | frame %v | dropped %d | q quits ",
		fps, stats.Current.Round(10*time.Microsecond), stats.Frames.Dropped)
	style := render.DefaultStyle.
		WithForeground(ansi.ANSI(ansi.Black, ansi.Normal)).
		WithBackground(ansi.ANSI(ansi.Cyan, ansi.Normal))
	buf.WriteString(line, render.Position{Row: 1, Col: 1}, style)
}
