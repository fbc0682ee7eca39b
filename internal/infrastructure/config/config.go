// Package config は設定ファイル（YAML）と設定ディレクトリの解決を提供します
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName は設定ディレクトリ名に使うアプリケーション名です
const AppName = "mdcombine"

// ConfigFileName は設定ディレクトリ内の設定ファイル名です
const ConfigFileName = "config.yaml"

// フォルダ選択の方式
const (
	PickerFilter   = "filter"
	PickerDropdown = "dropdown"
	PickerNative   = "native"
)

// Config はアプリケーションの設定です
type Config struct {
	// Vault はボルトとして扱うディレクトリです
	Vault string `yaml:"vault"`
	// Picker はフォルダ選択の方式です（filter / dropdown / native）
	Picker string `yaml:"picker"`
	// Open は作成したファイルを開くかどうかです
	Open bool `yaml:"open"`
	// Ordering はファイルの並び順です（locale / binary）
	Ordering string `yaml:"ordering"`
	// LogLevel は出力するログの最小レベルです
	LogLevel string `yaml:"log_level"`
	// LogFile はログの出力先です。空なら標準エラー出力です
	LogFile string `yaml:"log_file"`
}

// Default は既定値の設定を返します
func Default() Config {
	return Config{
		Vault:    ".",
		Picker:   PickerFilter,
		Open:     true,
		Ordering: "locale",
		LogLevel: "WARN",
		LogFile:  "stderr",
	}
}

// Dir は設定ディレクトリを返します。
//
// 解決順:
//   - $MDCOMBINE_CONFIG_HOME
//   - $XDG_CONFIG_HOME/mdcombine
//   - Windows では %AppData%/mdcombine
//   - それ以外は ~/.config/mdcombine
func Dir() string {
	if dir := os.Getenv("MDCOMBINE_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, AppName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", AppName)
}

// DefaultPath は既定の設定ファイルのパスを返します
func DefaultPath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, ConfigFileName)
}

// Load は設定ファイルを読み込みます。ファイルがなければ既定値を返します。
// ファイルに書かれていない項目は既定値のままです
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("設定ファイルの解析に失敗しました (%s): %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("設定ファイルが不正です (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate は設定値を検証します
func (c Config) Validate() error {
	switch c.Picker {
	case PickerFilter, PickerDropdown, PickerNative:
	default:
		return fmt.Errorf("picker は filter / dropdown / native のいずれかです: %q", c.Picker)
	}
	switch strings.ToLower(c.Ordering) {
	case "locale", "binary":
	default:
		return fmt.Errorf("ordering は locale / binary のいずれかです: %q", c.Ordering)
	}
	if strings.TrimSpace(c.Vault) == "" {
		return errors.New("vault が空です")
	}
	return nil
}

// Save は設定を YAML で書き出します
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("設定のエンコードに失敗しました: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("設定ディレクトリの作成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("設定ファイルの書き込みに失敗しました: %w", err)
	}
	return nil
}
