package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"randscene/core"
	"randscene/export"
	"randscene/generator"
	"randscene/random"
	"randscene/renderer"
	"randscene/scene"
)

func main() {
	seed := flag.Uint64("seed", 0, "random seed (0 = seed from the clock)")
	configPath := flag.String("config", "", "optional YAML config overlaying the defaults")
	outDir := flag.String("out", ".", "directory for screenshots")
	width := flag.Int("width", 0, "window width (0 = primary monitor)")
	height := flag.Int("height", 0, "window height (0 = primary monitor)")
	gltfPath := flag.String("gltf", "", "also write the generated scene as binary glTF")
	manifestPath := flag.String("manifest", "", "also write a YAML manifest of the generated scene")
	noOpen := flag.Bool("no-open", false, "do not open screenshots in the image viewer")
	flag.Parse()

	cfg, err := generator.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	winCfg := core.DefaultWindowConfig()
	winCfg.Width = *width
	winCfg.Height = *height
	window, err := core.NewWindow(winCfg)
	if err != nil {
		fmt.Printf("Failed to create window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	renderEngine, err := renderer.NewRenderEngine(window)
	if err != nil {
		fmt.Printf("Failed to create render engine: %v\n", err)
		os.Exit(1)
	}
	defer renderEngine.Destroy()

	src := random.NewTimeSeeded()
	if *seed != 0 {
		src = random.New(*seed)
	}

	loader := scene.FileCubeLoader{OnDone: func(cube *scene.CubeTexture) {
		if err := cube.Err(); err != nil {
			fmt.Printf("[Texture] %s map failed, rendering without it: %v\n", cube.Mapping, err)
		}
	}}
	gen, err := generator.Build(src, cfg, loader)
	if err != nil {
		fmt.Printf("Failed to build scene: %v\n", err)
		os.Exit(1)
	}

	fbw, fbh := renderEngine.OutputSize()
	gen.Scene.Camera.UpdateAspectRatio(float32(fbw), float32(fbh))
	renderEngine.SetScene(gen.Scene)

	fmt.Printf("[Scene] seed %d, texture %s, background %s, %d objects\n",
		gen.Seed, gen.Texture, gen.Scene.Background, len(gen.Scene.Objects()))
	for _, n := range gen.Scene.Objects() {
		p := n.Transform.Position
		fmt.Printf("[Scene]   %-9s %-11s at (%.0f, %.0f, %.0f) %s\n",
			n.Name, n.Geometry.Kind(), p.X, p.Y, p.Z, n.Material.EnvMap.Mapping)
	}

	manifest := scene.NewManifest(gen.Scene, gen.Seed, gen.Texture)
	if *manifestPath != "" {
		if err := manifest.Save(*manifestPath); err != nil {
			fmt.Printf("[Scene] manifest: %v\n", err)
		} else {
			fmt.Printf("[Scene] manifest written to %s\n", *manifestPath)
		}
	}
	if *gltfPath != "" {
		if err := scene.ExportGLTF(gen.Scene, *gltfPath); err != nil {
			fmt.Printf("[Scene] glTF: %v\n", err)
		} else {
			fmt.Printf("[Scene] glTF written to %s\n", *gltfPath)
		}
	}

	exporter := export.NewExporter(*outDir, !*noOpen)
	exporter.Manifest = manifest

	exportRequested := false
	window.SetCharCallback(func(char rune) {
		if export.IsTrigger(char) {
			exportRequested = true
		}
	})
	window.SetKeyCallback(func(key int) {
		if key == core.KeyEscape {
			window.SetShouldClose(true)
		}
	})

	window.SetTitle(fmt.Sprintf("randscene | seed %d", gen.Seed))
	fmt.Println("Press s to save a screenshot, Escape to quit")

	frameCount := 0
	lastTime := time.Now()

	for !window.ShouldClose() {
		window.PollEvents()

		if err := renderEngine.Render(); err != nil {
			fmt.Printf("Render failed: %v\n", err)
			break
		}

		// Read back before the swap; the back buffer is undefined afterwards.
		if exportRequested {
			exportRequested = false
			path, err := exporter.Export(renderEngine.Capture())
			if err != nil {
				fmt.Printf("[Export] Error: %v\n", err)
			}
			if path != "" {
				fmt.Printf("[Export] Screenshot saved to %q\n", path)
			}
		}

		renderEngine.Present()

		frameCount++
		if now := time.Now(); now.Sub(lastTime) >= time.Second {
			objects, tris, culled := renderEngine.DrawStats()
			window.SetTitle(fmt.Sprintf("randscene | seed %d | FPS: %d | Objs: %d Tris: %d Culled: %d",
				gen.Seed, frameCount, objects, tris, culled))
			frameCount = 0
			lastTime = now
		}
	}

	fmt.Println("Exiting...")
}
