// Package watcher 监听目录中新出现的演示文稿文件，交给回调即时转换。
package watcher

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/aihub/ppt2tw/internal/pathutil"
)

// Watch 监听目录并对新增的匹配文件调用onFile，阻塞直到监听器关闭或出错
// 事件在单一循环中顺序处理，文件回调之间没有并发。
func Watch(dir string, recursive bool, ext, marker string, logger *zap.Logger, onFile func(path string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听器失败: %w", err)
	}
	defer w.Close()

	if err := addDirs(w, dir, recursive); err != nil {
		return err
	}
	logger.Info("开始监听目录", zap.String("dir", dir), zap.Bool("recursive", recursive))

	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}

			info, err := os.Stat(event.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				// 递归模式下新建的子目录也纳入监听
				if recursive {
					if err := addDirs(w, event.Name, true); err != nil {
						logger.Warn("监听新目录失败", zap.String("dir", event.Name), zap.Error(err))
					}
				}
				continue
			}

			name := filepath.Base(event.Name)
			if !strings.EqualFold(filepath.Ext(name), ext) || pathutil.IsConverted(name, marker) {
				continue
			}

			waitUntilStable(event.Name)
			onFile(event.Name)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("文件监听错误", zap.Error(err))
		}
	}
}

// addDirs 把目录（递归模式下含全部子目录）加入监听集合
func addDirs(w *fsnotify.Watcher, dir string, recursive bool) error {
	if !recursive {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("监听目录失败: %w", err)
		}
		return nil
	}
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("监听目录失败: %w", err)
			}
		}
		return nil
	})
}

// waitUntilStable 等待文件大小停止变化后再处理，避免读到写入一半的文件
func waitUntilStable(path string) {
	var lastSize int64 = -1
	for i := 0; i < 20; i++ {
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.Size() == lastSize {
			return
		}
		lastSize = info.Size()
		time.Sleep(200 * time.Millisecond)
	}
}
