package nativetest

import (
	"bufio"
	"errors"
	"strconv"
	"strings"
)

type beatmapData struct {
	mode    int32
	title   string
	artist  string
	version string

	approachRate      float32
	drainRate         float32
	overallDifficulty float32
	circleSize        float32
	sliderMultiplier  float64
	sliderTickRate    float64

	circles  int32
	sliders  int32
	spinners int32
	holds    int32
}

func (b *beatmapData) objects() int32 {
	return b.circles + b.sliders + b.spinners + b.holds
}

// maxCombo counts one combo point per circle and spinner and two per slider
// (head and tail).
func (b *beatmapData) maxCombo() int32 {
	return b.circles + 2*b.sliders + b.spinners + b.holds
}

var errNotBeatmap = errors.New("nativetest: not an osu! beatmap")

// parseBeatmap reads the handful of .osu fields the fake needs.
func parseBeatmap(text string) (*beatmapData, error) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() || !strings.HasPrefix(strings.TrimPrefix(sc.Text(), "\ufeff"), "osu file format") {
		return nil, errNotBeatmap
	}

	bm := &beatmapData{approachRate: -1, sliderMultiplier: 1.4, sliderTickRate: 1}
	section := ""
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = line[1 : len(line)-1]
			continue
		}

		if section == "HitObjects" {
			if err := bm.addHitObject(line); err != nil {
				return nil, err
			}
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		switch section {
		case "General":
			if key == "Mode" {
				n, err := strconv.ParseInt(value, 10, 32)
				if err != nil || n < 0 || n > 3 {
					return nil, errNotBeatmap
				}
				bm.mode = int32(n)
			}
		case "Metadata":
			switch key {
			case "Title":
				bm.title = value
			case "Artist":
				bm.artist = value
			case "Version":
				bm.version = value
			}
		case "Difficulty":
			if err := bm.setDifficulty(key, value); err != nil {
				return nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if bm.approachRate < 0 {
		bm.approachRate = bm.overallDifficulty
	}
	return bm, nil
}

func (b *beatmapData) setDifficulty(key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	switch key {
	case "HPDrainRate":
		b.drainRate = float32(v)
	case "CircleSize":
		b.circleSize = float32(v)
	case "OverallDifficulty":
		b.overallDifficulty = float32(v)
	case "ApproachRate":
		b.approachRate = float32(v)
	case "SliderMultiplier":
		b.sliderMultiplier = v
	case "SliderTickRate":
		b.sliderTickRate = v
	}
	return nil
}

const (
	typeCircle  = 1 << 0
	typeSlider  = 1 << 1
	typeSpinner = 1 << 3
	typeHold    = 1 << 7
)

func (b *beatmapData) addHitObject(line string) error {
	fields := strings.Split(line, ",")
	if len(fields) < 4 {
		return errNotBeatmap
	}
	typ, err := strconv.Atoi(strings.TrimSpace(fields[3]))
	if err != nil {
		return err
	}
	switch {
	case typ&typeCircle != 0:
		b.circles++
	case typ&typeSlider != 0:
		b.sliders++
	case typ&typeSpinner != 0:
		b.spinners++
	case typ&typeHold != 0:
		b.holds++
	default:
		return errNotBeatmap
	}
	return nil
}
