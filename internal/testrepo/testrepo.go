// Package testrepo builds host repository fixtures for tests: a root
// manifest, CI workflow, asset/dist/packaging scripts, launch config and a
// workspace file with trailing commas, as found in a real checkout.
package testrepo

import (
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Paths of the fixture files.
const (
	Manifest          = "package.json"
	CIWorkflow        = ".github/workflows/ci-repo.yml"
	CollectAssets     = "scripts/collect-assets.js"
	CopyDist          = "scripts/copy-dist.js"
	PackageExtensions = "scripts/package-extensions.js"
	Launch            = ".vscode/launch.json"
	Workspace         = "editor-extensions.code-workspace"
)

var ManifestContent = heredoc.Doc(`
	{
	  "name": "editor-extensions",
	  "version": "0.2.0",
	  "private": true,
	  "workspaces": [
	    "shared",
	    "vscode/core",
	    "vscode/java",
	    "webview-ui"
	  ],
	  "scripts": {
	    "build": "npm run build --workspaces",
	    "package-core": "npm run package --workspace=vscode/core",
	    "package-java": "npm run package --workspace=vscode/java"
	  }
	}
`)

var CIWorkflowContent = heredoc.Doc(`
	name: CI (repo level)

	on:
	  push:
	    branches: [main]
	  pull_request:

	jobs:
	  build:
	    runs-on: ubuntu-latest
	    steps:
	      - uses: actions/checkout@v4
	      - name: Install
	        run: npm ci
	      - name: Package core extension
	        run: npm run package-core
	      - name: Package java extension
	        run: npm run package-java
	      - name: Upload VSIX artifacts
	        uses: actions/upload-artifact@v4
	        with:
	          name: vsix
	          path: dist/*.vsix
`)

var CollectAssetsContent = heredoc.Doc(`
	#!/usr/bin/env node
	import fs from "fs";
	import path from "path";

	// Provider binaries downloaded per release, keyed by binary name.
	const ASSETS = {
	  "kai-analyzer-rpc": {
	    extension: "core",
	    org: "konveyor",
	    repo: "kai",
	    releaseTag: "v0.2.0",
	  },
	  "java-external-provider": {
	    extension: "java",
	    org: "konveyor",
	    repo: "java-external-provider",
	    releaseTag: "v0.2.0", // pinned {until next release}
	  },
	};

	export async function collect(target) {
	  for (const [name, asset] of Object.entries(ASSETS)) {
	    console.log(` + "`${name} -> ${path.join(target, asset.extension)}`" + `);
	  }
	}
`)

var CopyDistContent = heredoc.Doc(`
	const fs = require("fs");

	const EXTENSIONS = {
	  core: {
	    dir: "vscode/core",
	    packageName: "konveyor",
	  },
	  java: {
	    dir: "vscode/java",
	    packageName: "konveyor-java",
	  },
	};

	for (const [id, ext] of Object.entries(EXTENSIONS)) {
	  fs.cpSync(` + "`${ext.dir}/out`" + `, ` + "`dist/${id}`" + `, { recursive: true });
	}
`)

var PackageExtensionsContent = heredoc.Doc(`
	const { execSync } = require("child_process");

	const VALID_EXTENSIONS = [
	  "core",
	  "java", /* ships with core */
	];

	const requested = process.argv.slice(2);
	for (const ext of requested) {
	  if (!VALID_EXTENSIONS.includes(ext)) {
	    throw new Error(` + "`unknown extension ${ext}`" + `);
	  }
	  execSync(` + "`npm run package-${ext}`" + `, { stdio: "inherit" });
	}
`)

var LaunchContent = heredoc.Doc(`
	{
	  "version": "0.2.0",
	  "configurations": [
	    {
	      "name": "Run Extensions",
	      "type": "extensionHost",
	      "request": "launch",
	      "args": [
	        "--extensionDevelopmentPath=${workspaceFolder}/vscode/core",
	        "--extensionDevelopmentPath=${workspaceFolder}/vscode/java"
	      ],
	      "outFiles": [
	        "${workspaceFolder}/vscode/core/out/**/*.js",
	        "${workspaceFolder}/vscode/java/out/**/*.js"
	      ],
	      "preLaunchTask": "npm: build && watch"
	    },
	    {
	      "name": "Extension Tests",
	      "type": "extensionHost",
	      "request": "launch",
	      "args": [
	        "--extensionDevelopmentPath=${workspaceFolder}/vscode/core"
	      ],
	      "outFiles": [
	        "${workspaceFolder}/vscode/core/out/**/*.js"
	      ]
	    }
	  ]
	}
`)

var WorkspaceContent = heredoc.Doc(`
	{
	  "folders": [
	    { "path": "." },
	    { "path": "vscode/core", "name": "core" },
	    { "path": "vscode/java", },
	  ],
	  "settings": {
	    "editor.formatOnSave": true,
	  },
	}
`)

// Files returns the fixture contents keyed by path.
func Files() map[string]string {
	return map[string]string{
		Manifest:          ManifestContent,
		CIWorkflow:        CIWorkflowContent,
		CollectAssets:     CollectAssetsContent,
		CopyDist:          CopyDistContent,
		PackageExtensions: PackageExtensionsContent,
		Launch:            LaunchContent,
		Workspace:         WorkspaceContent,
	}
}

// Seed writes every fixture file into fsys.
func Seed(fsys billy.Filesystem) error {
	return SeedFiles(fsys, Files())
}

// SeedFiles writes files into fsys, creating parent directories.
func SeedFiles(fsys billy.Filesystem, files map[string]string) error {
	for name, content := range files {
		if err := util.WriteFile(fsys, name, []byte(content), 0o644); err != nil {
			return fmt.Errorf("seeding %s: %w", name, err)
		}
	}
	return nil
}

// Snapshot returns the content of every regular file under fsys's root.
func Snapshot(fsys billy.Filesystem) (map[string]string, error) {
	out := make(map[string]string)
	err := util.Walk(fsys, ".", func(name string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		data, err := util.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		out[name] = string(data)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("snapshotting repository: %w", err)
	}
	return out, nil
}
