package export

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"text/template"

	"github.com/menuforge/menuforge/internal/project"
)

// The shell is deliberately thin: a static page that loads menu.json and
// renders it with the bundled runtime. Everything dynamic lives in the
// project document, so the shell templates almost never change.

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="icon" href="favicon.ico">
<link rel="stylesheet" href="styles.css?v={{.Version}}">
</head>
<body>
<div id="menu-root" data-project="menu.json"></div>
<script src="app.js?v={{.Version}}" defer></script>
</body>
</html>`))

const exportStyles = `:root {
  --menu-bg: #101014;
  --menu-fg: #f5f2ea;
  --menu-accent: #c9a24b;
}
* { box-sizing: border-box; margin: 0; }
html, body { height: 100%; }
body {
  background: var(--menu-bg);
  color: var(--menu-fg);
  font-family: system-ui, sans-serif;
  overflow-x: hidden;
}
#menu-root { min-height: 100%; }
.menu-backdrop {
  position: fixed;
  inset: 0;
  background-size: cover;
  background-position: center;
  z-index: -1;
}
.menu-category { padding: 2rem 1rem; }
.menu-category h2 {
  color: var(--menu-accent);
  font-size: 1.4rem;
  margin-bottom: 1rem;
}
.menu-carousel {
  display: flex;
  gap: 1rem;
  overflow-x: auto;
  scroll-snap-type: x mandatory;
}
.menu-item {
  flex: 0 0 min(70vw, 320px);
  scroll-snap-align: center;
}
.menu-item img {
  width: 100%;
  aspect-ratio: 1;
  object-fit: contain;
  border-radius: 0.5rem;
  background: rgba(0, 0, 0, 0.3);
}
.menu-item .name { font-size: 1.05rem; margin-top: 0.5rem; }
.menu-item .price { color: var(--menu-accent); }
.menu-item .description { font-size: 0.85rem; opacity: 0.8; }
`

var runtimeTemplate = template.Must(template.New("runtime").Parse(`"use strict";
(function () {
  var root = document.getElementById("menu-root");
  if (!root) return;

  function el(tag, cls, text) {
    var node = document.createElement(tag);
    if (cls) node.className = cls;
    if (text) node.textContent = text;
    return node;
  }

  function render(projectData) {
    var backgrounds = projectData.backgrounds || [];
    if (backgrounds.length && backgrounds[0].src) {
      var backdrop = el("div", "menu-backdrop");
      backdrop.style.backgroundImage = "url(" + JSON.stringify(backgrounds[0].src) + ")";
      root.appendChild(backdrop);
    }

    (projectData.categories || []).forEach(function (category) {
      var section = el("section", "menu-category");
      section.appendChild(el("h2", null, category.name || ""));
      var strip = el("div", "menu-carousel");
      (category.items || []).forEach(function (item) {
        var card = el("article", "menu-item");
        var media = item.media || {};
        var src = media.hero360 || "";
        if (media.scrollAnimationMode === "alternate" && media.scrollAnimationSrc) {
          src = media.scrollAnimationSrc;
        }
        if (src) {
          var img = el("img");
          img.loading = "lazy";
          img.alt = item.name || "";
          img.src = src;
          var responsive = media.responsive;
          if (responsive && !(media.scrollAnimationMode === "alternate" && media.scrollAnimationSrc)) {
            var parts = [];
            var seen = {};
            [[responsive.small, 480], [responsive.medium, 960], [responsive.large, 1440]].forEach(function (pair) {
              if (pair[0] && !seen[pair[0]]) {
                seen[pair[0]] = true;
                parts.push(pair[0] + " " + pair[1] + "w");
              }
            });
            if (parts.length) img.srcset = parts.join(", ");
          }
          card.appendChild(img);
        }
        card.appendChild(el("div", "name", item.name || ""));
        if (item.price) card.appendChild(el("div", "price", item.price));
        if (item.description) card.appendChild(el("div", "description", item.description));
        strip.appendChild(card);
      });
      section.appendChild(strip);
      root.appendChild(section);
    });
  }

  fetch(root.dataset.project || "menu.json")
    .then(function (res) { return res.json(); })
    .then(render)
    .catch(function (err) { console.error("menu load failed", err); });
})();
`))

const serveCommand = `#!/bin/sh
# Serves the exported menu locally. Double-click on macOS or run from a shell.
cd "$(dirname "$0")"
echo "Serving menu at http://localhost:8090"
python3 -m http.server 8090
`

const serveBat = "@echo off\r\n" +
	"cd /d %~dp0\r\n" +
	"echo Serving menu at http://localhost:8090\r\n" +
	"python -m http.server 8090\r\n"

const readmeText = `Your exported menu
==================

This folder is a complete static website. Host it anywhere that serves
plain files (Netlify, GitHub Pages, any web server), or preview it locally:

  macOS / Linux:  double-click serve.command
  Windows:        double-click serve.bat

Then open http://localhost:8090 in a browser.

Files:
  index.html            the menu page
  menu.json             your menu content
  assets/               images, fonts and sounds
  asset-manifest.json   inventory of every bundled file
  export-report.json    size and budget diagnostics
`

type shellData struct {
	Title   string
	Lang    string
	Version string
}

// buildIndexHTML renders index.html with cache-busted shell references.
func buildIndexHTML(p *project.MenuProject, version string) ([]byte, error) {
	title := p.Meta.Title
	if title == "" {
		title = p.Slug
	}
	lang := p.Meta.Locale
	if lang == "" {
		lang = "en"
	}
	var buf bytes.Buffer
	err := indexTemplate.Execute(&buf, shellData{Title: title, Lang: lang, Version: version})
	if err != nil {
		return nil, fmt.Errorf("failed to render index.html: %w", err)
	}
	return buf.Bytes(), nil
}

// buildExportStyles returns the bundled stylesheet.
func buildExportStyles() []byte {
	return []byte(exportStyles)
}

// buildRuntimeScript returns the bundled runtime. The project parameter is
// reserved for template-dependent runtimes; the default template ignores it.
func buildRuntimeScript(_ *project.MenuProject) ([]byte, error) {
	var buf bytes.Buffer
	if err := runtimeTemplate.Execute(&buf, nil); err != nil {
		return nil, fmt.Errorf("failed to render runtime script: %w", err)
	}
	return buf.Bytes(), nil
}

// buildFavicon produces a minimal valid 16x16 32bpp ICO, generated
// programmatically so the bundle stays byte-deterministic.
func buildFavicon() []byte {
	const size = 16
	// 40-byte BITMAPINFOHEADER + 16*16 BGRA pixels + 16*4 AND mask rows
	imageSize := 40 + size*size*4 + size*4

	var buf bytes.Buffer
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // count
	// ICONDIRENTRY
	buf.WriteByte(size)                                        // width
	buf.WriteByte(size)                                        // height
	buf.WriteByte(0)                                           // colors
	buf.WriteByte(0)                                           // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1))         // planes
	binary.Write(&buf, binary.LittleEndian, uint16(32))        // bpp
	binary.Write(&buf, binary.LittleEndian, uint32(imageSize)) // data size
	binary.Write(&buf, binary.LittleEndian, uint32(22))        // data offset
	// BITMAPINFOHEADER (height doubled for the AND mask)
	binary.Write(&buf, binary.LittleEndian, uint32(40))
	binary.Write(&buf, binary.LittleEndian, int32(size))
	binary.Write(&buf, binary.LittleEndian, int32(size*2))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, uint16(32))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(size*size*4))
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	// Pixels, bottom-up: a gold plate on a dark field.
	for y := size - 1; y >= 0; y-- {
		for x := 0; x < size; x++ {
			dx, dy := x-8, y-8
			if dx*dx+dy*dy <= 36 {
				buf.Write([]byte{0x4b, 0xa2, 0xc9, 0xff}) // BGRA gold
			} else {
				buf.Write([]byte{0x14, 0x10, 0x10, 0xff}) // BGRA dark
			}
		}
	}
	// AND mask: all opaque.
	for i := 0; i < size*4; i++ {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

// buildServeCommand returns the POSIX launcher script.
func buildServeCommand() []byte {
	return []byte(serveCommand)
}

// buildServeBat returns the Windows launcher script.
func buildServeBat() []byte {
	return []byte(serveBat)
}

// buildReadme returns the bundle README.
func buildReadme() []byte {
	return []byte(readmeText)
}
