// wadinfo opens a WAD stack and prints what's inside: the lump directory,
// the asset bank tallies, and the maps that load cleanly.
//
//	wadinfo doom.wad killer.wad
//	wadinfo --config stack.toml --lumps
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	flag "github.com/ogier/pflag"
	log "github.com/sirupsen/logrus"

	"github.com/jkugelman/dusty-room/assets"
	"github.com/jkugelman/dusty-room/wad"
)

// stackConfig is the TOML manifest accepted by --config: the IWAD plus the
// PWADs to overlay, in order.
type stackConfig struct {
	Iwad  string   `toml:"iwad"`
	Pwads []string `toml:"pwads"`
}

func main() {
	configPath := flag.String("config", "", "TOML manifest naming the IWAD and PWADs")
	showLumps := flag.Bool("lumps", false, "print every file's lump directory")
	showMaps := flag.Bool("maps", true, "probe and summarize the stack's maps")
	verbose := flag.Bool("verbose", false, "log progress while loading")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	config, err := resolveConfig(*configPath, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	stack, err := openStack(config)
	if err != nil {
		log.Fatal(err)
	}

	if *showLumps {
		printLumps(stack)
	}

	bundle, err := assets.Load(stack)
	if err != nil {
		log.Fatal(err)
	}
	printAssets(bundle)

	if *showMaps {
		printMaps(stack, bundle)
	}
}

func resolveConfig(configPath string, args []string) (*stackConfig, error) {
	if configPath != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("pass WAD paths or --config, not both")
		}
		var config stackConfig
		if _, err := toml.DecodeFile(configPath, &config); err != nil {
			return nil, fmt.Errorf("%s: %w", configPath, err)
		}
		if config.Iwad == "" {
			return nil, fmt.Errorf("%s: no iwad named", configPath)
		}
		return &config, nil
	}

	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "usage: wadinfo [flags] IWAD [PWAD...]\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	return &stackConfig{Iwad: args[0], Pwads: args[1:]}, nil
}

func openStack(config *stackConfig) (*wad.Stack, error) {
	log.Debugf("opening %s", config.Iwad)
	stack, err := wad.Open(config.Iwad)
	if err != nil {
		return nil, err
	}
	for _, path := range config.Pwads {
		log.Debugf("patching %s", path)
		stack, err = stack.Patch(path)
		if err != nil {
			return nil, err
		}
	}
	return stack, nil
}

func printLumps(stack *wad.Stack) {
	for _, file := range stack.Files() {
		fmt.Printf("%s (%s, %s lumps)\n", file.Path(), file.Kind(),
			humanize.Comma(int64(file.LumpCount())))
		for _, lump := range file.Lumps() {
			fmt.Printf("  %-8s  %s\n", lump.Name(), humanize.Bytes(uint64(lump.Size())))
		}
	}
}

func printAssets(bundle *assets.Assets) {
	fmt.Printf("palettes: %d\n", bundle.Palettes.Count())
	fmt.Printf("flats:    %d\n", bundle.Flats.Len())
	fmt.Printf("patches:  %d\n", bundle.Patches.Len())
	fmt.Printf("textures: %d\n", bundle.Textures.Len())
}

// printMaps probes every conventional map name. Probing with the try-variant
// keeps absent slots quiet; a present but corrupt map still reports its error.
func printMaps(stack *wad.Stack, bundle *assets.Assets) {
	for _, name := range mapNames() {
		m, err := assets.TryLoadMap(stack, name, bundle.Flats, bundle.Textures)
		if err != nil {
			log.Warnf("%s: %v", name, err)
			continue
		}
		if m == nil {
			continue
		}
		fmt.Printf("%s: %d vertexes, %d linedefs, %d sidedefs, %d sectors\n",
			m.Name(), len(m.Vertexes()), len(m.Linedefs()), len(m.Sidedefs()), len(m.Sectors()))
	}
}

func mapNames() []string {
	var names []string
	for episode := 1; episode <= 4; episode++ {
		for mission := 1; mission <= 9; mission++ {
			names = append(names, fmt.Sprintf("E%dM%d", episode, mission))
		}
	}
	for level := 1; level <= 32; level++ {
		names = append(names, fmt.Sprintf("MAP%02d", level))
	}
	return names
}
