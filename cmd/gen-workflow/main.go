package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/flowserve/internal/cli"
	"gopkg.in/yaml.v3"
)

func main() {
	targetDir := "examples/quote"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	// Ensure dir exists
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		panic(err)
	}

	fmt.Printf("Generating quote workflow in: %s\n", targetDir)

	def, err := cli.BuiltinWorkflow()
	if err != nil {
		panic(err)
	}

	jsonData, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		panic(err)
	}
	write(filepath.Join(targetDir, "workflow.json"), append(jsonData, '\n'))

	yamlData, err := yaml.Marshal(def)
	if err != nil {
		panic(err)
	}
	write(filepath.Join(targetDir, "workflow.yaml"), yamlData)

	fmt.Println("Done.")
}

func write(path string, data []byte) {
	if err := os.WriteFile(path, data, 0644); err != nil {
		panic(err)
	}
	fmt.Printf("  wrote %s\n", path)
}
