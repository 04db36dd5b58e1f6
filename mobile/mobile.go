//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 使用 ebitenmobile 工具构建时会自动调用 init() 函数。
//
// 手动构建：
//
//	# Android
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.hero -o build/android/hero.aar -v ./mobile
//
//	# iOS (仅 macOS)
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Hero.xcframework -v ./mobile
package mobile

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/hero/pkg/app"
	"github.com/decker502/hero/pkg/embedded"
	"github.com/decker502/hero/pkg/settings"
	"github.com/decker502/hero/pkg/utils"
)

func init() {
	// assetsFS 和 dataFS 在 embed.go 中声明
	embedded.Init(assetsFS, dataFS)

	base, err := embedded.ReadFile(app.HeroConfigPath)
	if err != nil {
		log.Fatalf("配置读取失败: %v", err)
	}
	dev, creative, err := app.LoadSettings(base, "", "")
	if err != nil {
		log.Fatalf("配置解析失败: %v", err)
	}

	if err := utils.EnsureStorageDir(); err != nil {
		log.Printf("[Mobile] Warning: %v", err)
	}

	viewer, err := app.NewApp(app.Config{
		Verbose:   true,
		Developer: dev,
		Creative:  creative,
		Assets:    embedded.FS(),
		Prefs:     settings.Open("hero"),
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	// 注册到 ebitenmobile
	mobile.SetGame(viewer)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
