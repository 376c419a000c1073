package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/aihub/ppt2tw/internal/pathutil"
)

// Config 应用配置
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Convert ConvertConfig `mapstructure:"convert" validate:"required"`
	Log     LogConfig     `mapstructure:"log"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	Name    string `mapstructure:"name" validate:"required"`
	Version string `mapstructure:"version" validate:"required"`
}

// ConvertConfig 转换配置
type ConvertConfig struct {
	// Mode OpenCC转换方向，默认简体转繁体
	Mode string `mapstructure:"mode" validate:"required,oneof=s2t s2tw s2twp t2s"`
	// Marker 已转换文件的文件名标记
	Marker string `mapstructure:"marker" validate:"required,startswith=_"`
	// Extension 演示文稿文件扩展名
	Extension string `mapstructure:"extension" validate:"required,startswith=."`
	// OutputDir 未显式指定-o时的默认输出目录
	OutputDir string `mapstructure:"output_dir" validate:"required"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
}

// Load 加载配置：默认值 -> 可选配置文件(CONFIG_FILE) -> PPT2TW_*环境变量
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PPT2TW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	// 配置文件是可选的，不存在只警告不报错
	if configFile := os.Getenv("CONFIG_FILE"); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "警告: 配置文件 %s 读取失败: %v\n", configFile, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("配置校验失败: %w", err)
	}
	return &cfg, nil
}

// setDefaults 设置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "ppt2tw")
	v.SetDefault("app.version", "1.0.0")

	v.SetDefault("convert.mode", "s2t")
	v.SetDefault("convert.marker", pathutil.DefaultMarker)
	v.SetDefault("convert.extension", pathutil.DefaultExtension)
	v.SetDefault("convert.output_dir", "./output")

	v.SetDefault("log.level", "info")
}
