package devtools

import (
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

// styleClasses maps board styles to the CSS classes below
var styleClasses = map[renderer.TextStyle]string{
	renderer.StyleGrid:     "grid",
	renderer.StyleWall:     "wall",
	renderer.StyleBeeper:   "beeper",
	renderer.StyleRobot:    "robot",
	renderer.StyleRobotOff: "robot-off",
	renderer.StyleSubtle:   "label",
	renderer.StyleAlert:    "alert",
	renderer.StyleHUD:      "hud",
}

func htmlStyle(text string, style renderer.TextStyle) string {
	class, ok := styleClasses[style]
	if !ok {
		return html.EscapeString(text)
	}
	return fmt.Sprintf(`<span class="%s">%s</span>`, class, html.EscapeString(text))
}

// WriteScreenshotHTML renders f as a standalone HTML page
func WriteScreenshotHTML(w io.Writer, f state.Frame) error {
	var page strings.Builder

	page.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Karel World - Screenshot</title>
    <style>
        body {
            background-color: #ffffff;
            color: #141414;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #505050;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .map-container {
            border: 1px solid #dcdcdc;
            padding: 20px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .grid { color: #bbbbbb; }
        .wall { color: #000000; font-weight: bold; }
        .beeper { color: #000000; font-weight: bold; }
        .robot { color: #00a000; font-weight: bold; }
        .robot-off { color: #80b080; }
        .label { color: #505050; }
        .alert { color: #a01e1e; font-weight: bold; }
        .hud { color: #505050; }
        .message {
            margin-top: 20px;
            border-top: 1px solid #dcdcdc;
            padding-top: 10px;
        }
    </style>
</head>
<body>
`)

	page.WriteString(fmt.Sprintf(`    <div class="header">%s</div>`+"\n",
		htmlStyle(fmt.Sprintf("%dx%d  Speed %d  Robots %d",
			f.Geometry.Streets(), f.Geometry.Avenues(), f.Speed, f.Snapshot.RobotCount()), renderer.StyleHUD)))

	page.WriteString(`    <div class="map-container">` + "\n")
	for _, line := range renderer.Board(f.Snapshot, f.Geometry.Streets(), f.Geometry.Avenues(), htmlStyle) {
		page.WriteString(`        <div class="map-row">`)
		page.WriteString(line)
		page.WriteString("</div>\n")
	}
	page.WriteString(`    </div>` + "\n")

	if f.Editing {
		page.WriteString(fmt.Sprintf(`    <div class="message">%s</div>`+"\n", html.EscapeString(f.StatusLine())))
	}
	if f.Message != "" {
		style := renderer.StyleNormal
		if f.MessageAlert {
			style = renderer.StyleAlert
		}
		page.WriteString(fmt.Sprintf(`    <div class="message">%s</div>`+"\n", htmlStyle(f.Message, style)))
	}

	page.WriteString(`</body>
</html>
`)

	_, err := io.WriteString(w, page.String())
	return err
}

// SaveScreenshotHTML saves the board as a timestamped HTML file in the
// working directory and returns its name.
func SaveScreenshotHTML(f state.Frame) (string, error) {
	timestamp := time.Now().Format("20060102-150405")
	filename := fmt.Sprintf("screenshot-%s.html", timestamp)

	out, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := WriteScreenshotHTML(out, f); err != nil {
		return filename, err
	}
	return filename, nil
}
