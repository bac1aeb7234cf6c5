package ffmpeg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// CodecSettings bundles the encoder configuration for one output format.
type CodecSettings struct {
	VideoCodec    string
	AudioCodec    string
	AudioBitrate  string
	FileExtension string
	EncoderKwargs ffmpeg.KwArgs
}

var codecPresets = map[string]CodecSettings{
	"mp4": {
		VideoCodec:    "libx264",
		AudioCodec:    "aac",
		AudioBitrate:  "128k",
		FileExtension: ".mp4",
		EncoderKwargs: ffmpeg.KwArgs{
			"preset":   "fast",
			"crf":      23,
			"movflags": "+faststart",
			"pix_fmt":  "yuv420p",
		},
	},
	"webm": {
		VideoCodec:    "libvpx-vp9",
		AudioCodec:    "libopus",
		AudioBitrate:  "128k",
		FileExtension: ".webm",
		EncoderKwargs: ffmpeg.KwArgs{
			"crf":     32,
			"b:v":     0,
			"row-mt":  1,
			"pix_fmt": "yuv420p",
		},
	},
}

// GetCodecSettings returns the encoder configuration for an output format.
func GetCodecSettings(outputFormat string) (CodecSettings, error) {
	settings, ok := codecPresets[strings.ToLower(outputFormat)]
	if !ok {
		return CodecSettings{}, fmt.Errorf("unsupported output format: %s (supported: mp4, webm)", outputFormat)
	}
	return settings, nil
}

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// GetVideoMetadata probes a video file and returns its duration,
// dimensions and video codec.
func GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, errors.Wrap(err, "error probing video")
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, errors.New("no streams found in video")
	}

	var videoStream map[string]interface{}
	for _, stream := range streams {
		s, ok := stream.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := s["codec_type"].(string); codecType == "video" {
			videoStream = s
			break
		}
	}

	if videoStream == nil {
		return nil, errors.New("no video stream found")
	}

	var duration float64

	// First try video stream duration
	if durationStr, ok := videoStream["duration"].(string); ok {
		if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
			duration = d
		}
	}

	// If stream duration is not available, try format duration
	if duration == 0 {
		if format, ok := data["format"].(map[string]interface{}); ok {
			if durationStr, ok := format["duration"].(string); ok {
				if d, err := strconv.ParseFloat(strings.TrimSpace(durationStr), 64); err == nil {
					duration = d
				}
			}
		}
	}

	// Last resort: derive from frame count and frame rate
	if duration == 0 {
		if nbFrames, ok := videoStream["nb_frames"].(string); ok {
			if frames, err := strconv.ParseFloat(nbFrames, 64); err == nil {
				if frameRate := parseFrameRate(videoStream); frameRate > 0 {
					duration = frames / frameRate
				}
			}
		}
	}

	if duration == 0 {
		return nil, errors.New("could not determine video duration")
	}

	width, _ := videoStream["width"].(float64)
	height, _ := videoStream["height"].(float64)
	codec, _ := videoStream["codec_name"].(string)

	return &VideoMetadata{
		Duration: duration,
		Width:    int(width),
		Height:   int(height),
		Codec:    codec,
	}, nil
}

func parseFrameRate(videoStream map[string]interface{}) float64 {
	rFrameRate, ok := videoStream["r_frame_rate"].(string)
	if !ok {
		return 0
	}
	nums := strings.Split(rFrameRate, "/")
	if len(nums) != 2 {
		return 0
	}
	num, err1 := strconv.ParseFloat(nums[0], 64)
	den, err2 := strconv.ParseFloat(nums[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0
	}
	return num / den
}

// EnsureExtension strips any known video extension and appends the wanted one.
func EnsureExtension(filename, extension string) string {
	extensions := []string{".mp4", ".webm", ".mkv", ".avi", ".mov"}
	for _, ext := range extensions {
		filename = strings.TrimSuffix(filename, ext)
	}
	return filename + extension
}
