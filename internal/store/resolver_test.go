package store

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"guitarshop_dev_v1_202609/internal/model"
)

// ==================== 测试辅助 ====================

// fakeBackend 可注入失败的内存后端
type fakeBackend struct {
	settings model.Settings
	loadErr  error
	saveErr  error
	saves    int
}

func (f *fakeBackend) Load(ctx context.Context) (model.Settings, error) {
	if f.loadErr != nil {
		return model.Settings{}, f.loadErr
	}
	return f.settings, nil
}

func (f *fakeBackend) Save(ctx context.Context, s model.Settings) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.settings = s
	f.saves++
	return nil
}

func testSettings(hero string) model.Settings {
	return model.Settings{
		Featured:     []string{"g-1"},
		FeaturedMain: map[string]string{},
		HeroImage:    hero,
	}
}

// ==================== 读路径 ====================

func TestResolver_Read_Primary(t *testing.T) {
	primary := &fakeBackend{settings: testSettings("hero-local.jpg")}
	secondary := &fakeBackend{settings: testSettings("hero-blob.jpg")}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	s, source := r.Read(context.Background())
	if source != SourcePrimary {
		t.Fatalf("source = %v, want primary", source)
	}
	if s.HeroImage != "hero-local.jpg" {
		t.Errorf("应读到主后端的值, got %q", s.HeroImage)
	}
}

func TestResolver_Read_FallbackToSecondary(t *testing.T) {
	primary := &fakeBackend{loadErr: errors.New("read-only fs")}
	secondary := &fakeBackend{settings: testSettings("hero-blob.jpg")}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	s, source := r.Read(context.Background())
	if source != SourceSecondary {
		t.Fatalf("source = %v, want secondary", source)
	}
	if s.HeroImage != "hero-blob.jpg" {
		t.Errorf("应读到次后端的值, got %q", s.HeroImage)
	}
}

func TestResolver_Read_BothFail(t *testing.T) {
	primary := &fakeBackend{loadErr: errors.New("boom")}
	secondary := &fakeBackend{loadErr: errors.New("boom")}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	// 双后端失败不向调用方抛错，回兜底默认值
	s, source := r.Read(context.Background())
	if source != SourceDefault {
		t.Fatalf("source = %v, want default", source)
	}
	if s.Featured == nil || s.FeaturedMain == nil {
		t.Error("默认设置的集合字段不能是 nil")
	}
	if len(s.Featured) != 0 || s.HeroImage != "" {
		t.Errorf("默认设置应为空值, got %+v", s)
	}
}

func TestResolver_Read_NilSecondary(t *testing.T) {
	primary := &fakeBackend{loadErr: errors.New("boom")}
	r := NewResolver(primary, nil, zap.NewNop().Sugar())

	_, source := r.Read(context.Background())
	if source != SourceDefault {
		t.Fatalf("未配置次后端时应直接回默认值, source = %v", source)
	}
}

// ==================== 写路径 ====================

func TestResolver_Write_Primary(t *testing.T) {
	primary := &fakeBackend{}
	secondary := &fakeBackend{}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	source, err := r.Write(context.Background(), testSettings("h.jpg"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if source != SourcePrimary {
		t.Fatalf("source = %v, want primary", source)
	}
	if secondary.saves != 0 {
		t.Error("主后端成功时不应写次后端")
	}
}

func TestResolver_Write_FallbackToSecondary(t *testing.T) {
	primary := &fakeBackend{saveErr: errors.New("read-only fs")}
	secondary := &fakeBackend{}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	source, err := r.Write(context.Background(), testSettings("h.jpg"))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if source != SourceSecondary {
		t.Fatalf("source = %v, want secondary", source)
	}
	if secondary.saves != 1 {
		t.Errorf("次后端应落一次盘, saves = %d", secondary.saves)
	}
}

func TestResolver_Write_BothFail_ReturnsRootCause(t *testing.T) {
	rootCause := errors.New("read-only fs")
	primary := &fakeBackend{saveErr: rootCause}
	secondary := &fakeBackend{saveErr: errors.New("bucket gone")}
	r := NewResolver(primary, secondary, zap.NewNop().Sugar())

	_, err := r.Write(context.Background(), testSettings("h.jpg"))
	if !errors.Is(err, rootCause) {
		t.Fatalf("应返回主后端的根因, got %v", err)
	}
}
