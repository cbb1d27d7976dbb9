package loop

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/generators"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	bellRate     = beep.SampleRate(44100)
	bellFreq     = 880.0
	bellDuration = 350 * time.Millisecond
)

// bellStream returns the two-note completion chime.
func bellStream() (beep.Streamer, error) {
	high, err := generators.SineTone(bellRate, bellFreq)
	if err != nil {
		return nil, err
	}

	low, err := generators.SineTone(bellRate, bellFreq*3/4)
	if err != nil {
		return nil, err
	}

	chime := beep.Seq(
		beep.Take(bellRate.N(bellDuration), low),
		beep.Take(bellRate.N(bellDuration), high),
	)

	return &effects.Volume{
		Streamer: chime,
		Base:     2,
		Volume:   -2,
	}, nil
}

// ringBell plays the chime and blocks until it has finished.
func ringBell() error {
	stream, err := bellStream()
	if err != nil {
		return err
	}

	bufferSize := 10

	err = speaker.Init(bellRate, bellRate.N(time.Second/time.Duration(bufferSize)))
	if err != nil {
		return err
	}

	done := make(chan bool)

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		done <- true
	})))

	<-done

	speaker.Clear()
	speaker.Close()

	return nil
}
