package ui

// defaultCSS styles the add panel and the inspector. A sheet at DefaultCSSPath
// is layered on top.
const defaultCSS = `
/* add panel, top left under the stats line */
.add-panel { left: 10; top: 64; width: 330; height: 112; background: #14141c; border: #3a3a4a; }
.add-line { left: 14; width: 320; height: 22; color: #d8d8e0; font-size: 16; padding: 0; }
#add-title { top: 70; color: #ff69b4; font-size: 18; }
#add-keys { top: 94; }
#add-color { top: 118; }
#add-scale { top: 142; }
#add-swatch { left: 300; top: 116; width: 24; height: 18; border: #d8d8e0; }

/* inspector, top right under the fps counter */
.inspector { left: 100%; top: 64; width: 250; height: 154; background: #14141c; border: #3a3a4a; }
.inspector-line { left: 100%; width: 246; height: 22; color: #d8d8e0; font-size: 16; padding: 0; }
#inspector-title { top: 70; color: #4fc3f7; font-size: 18; }
#inspector-type { top: 94; }
#inspector-color { top: 118; }
#inspector-position { top: 142; }
#inspector-scale { top: 166; }
#inspector-bounce { top: 190; }
`
