package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/achlubek/shader-playground/editor"
	"github.com/achlubek/shader-playground/glfwcontext"
	"github.com/achlubek/shader-playground/options"
	"github.com/achlubek/shader-playground/renderer"
	"github.com/achlubek/shader-playground/shader"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.PlaygroundOptions{
		Width:       flag.Int("width", 1280, "Width of the window"),
		Height:      flag.Int("height", 720, "Height of the window"),
		ShaderFile:  flag.String("shader", "", "Fragment shader file to load and watch for edits"),
		Feedback:    flag.Bool("feedback", false, "Enable the previous-frame backbuffer texture"),
		AutoCompile: flag.Bool("autocompile", false, "Compile automatically when the shader file changes"),
		ExportDir:   flag.String("exportdir", ".", "Directory for exported shader files"),
		Record:      flag.Bool("record", false, "Enable recording mode"),
		Duration:    flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:         flag.Int("fps", 60, "Frames per second for recording"),
		Codec:       flag.String("codec", "h264", "Video codec for recording (h264 or hevc)"),
		OutputFile:  flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath:  flag.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		fmt.Println("Interactive fragment-shader playground")
		fmt.Println()
		fmt.Println("Keys: Enter = compile, F2 = export, Tab = toggle editor panel, Esc = quit")
		flag.PrintDefaults()
		return
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize graphics: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	// Recording runs against a hidden window.
	ctx, err := glfwcontext.New(opts, !*opts.Record)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}

	host := renderer.New(ctx, *opts.Feedback)
	defer host.Shutdown()
	if err := host.InitGL(); err != nil {
		log.Fatalf("Failed to initialize renderer: %v", err)
	}

	source := shader.DefaultFragmentSource(*opts.Feedback)
	if *opts.ShaderFile != "" {
		data, err := os.ReadFile(*opts.ShaderFile)
		if err != nil {
			log.Fatalf("Failed to read shader file: %v", err)
		}
		source = string(data)
	}

	panel := editor.NewPanel(host, source, *opts.ExportDir)
	if err := panel.Compile(); err != nil {
		if *opts.Record {
			log.Fatalf("Shader failed to compile: %v", err)
		}
		log.Printf("Initial shader rejected; edit the file and recompile.")
	}

	if *opts.Record {
		log.Println("Starting offscreen render loop...")
		if err := host.RunOffscreen(opts); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
		return
	}

	var watcher *editor.Watcher
	if *opts.ShaderFile != "" {
		watcher, err = editor.NewWatcher(*opts.ShaderFile)
		if err != nil {
			log.Printf("Draft watching disabled: %v", err)
		} else {
			defer watcher.Close()
		}
	}

	ctx.RegisterKeyCallback(glfw.KeyEnter, func() {
		// Failures are recorded as the panel diagnostic.
		_ = panel.Compile()
	})
	ctx.RegisterKeyCallback(glfw.KeyF2, func() {
		if _, err := panel.Export(); err != nil {
			log.Printf("Export failed: %v", err)
		}
	})
	ctx.RegisterKeyCallback(glfw.KeyTab, func() {
		panel.ToggleEditors()
	})

	host.SetDrawHook(func(t float64) {
		if watcher == nil {
			return
		}
		if src, changed := watcher.Poll(); changed {
			panel.SetDraft(src)
			if *opts.AutoCompile {
				_ = panel.Compile()
			}
		}
	})

	log.Println("Starting interactive render loop...")
	host.Run()
}
