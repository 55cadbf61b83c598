package config

import (
	"testing"
)

func TestSceneTemplates(t *testing.T) {
	names := ListSceneTemplates()
	expected := []string{"default", "empty", "tower"}
	if len(names) != len(expected) {
		t.Fatalf("ListSceneTemplates() = %v, want %v", names, expected)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("ListSceneTemplates()[%d] = %q, want %q", i, names[i], name)
		}
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			scene, ok := GetSceneTemplate(name)
			if !ok {
				t.Fatalf("GetSceneTemplate(%q) not found", name)
			}
			if scene.Name != name {
				t.Errorf("scene.Name = %q, want %q", scene.Name, name)
			}

			config := DefaultConfig()
			config.Scene = scene
			if err := Validate(config); err != nil {
				t.Errorf("template %q does not validate: %v", name, err)
			}
		})
	}
}

func TestSceneTemplate_DefaultHasGameplayStatics(t *testing.T) {
	scene, _ := GetSceneTemplate(DefaultSceneName)

	var hookable, starts, finishes, colored int
	for _, s := range scene.Statics {
		if s.Hookable {
			hookable++
		}
		if s.TimerStart {
			starts++
		}
		if s.Finish {
			finishes++
		}
		if s.Color != "" {
			colored++
		}
	}

	if hookable == 0 || starts != 1 || finishes != 1 || colored == 0 {
		t.Errorf("hookable=%d starts=%d finishes=%d colored=%d", hookable, starts, finishes, colored)
	}
}

func TestGetSceneTemplate_Unknown(t *testing.T) {
	if _, ok := GetSceneTemplate("missing"); ok {
		t.Error("GetSceneTemplate() found a template that does not exist")
	}
}

func TestApplyTemplate(t *testing.T) {
	t.Run("empty scene becomes default", func(t *testing.T) {
		var scene SceneConfig
		if err := scene.applyTemplate(); err != nil {
			t.Fatalf("applyTemplate() error = %v", err)
		}
		if scene.Name != DefaultSceneName || len(scene.Statics) == 0 {
			t.Errorf("unexpected scene %+v", scene)
		}
	})

	t.Run("rects keep an unknown name", func(t *testing.T) {
		scene := SceneConfig{Name: "page", Rects: []RectConfig{{Top: 0, Bottom: 10, Left: 0, Right: 10}}}
		if err := scene.applyTemplate(); err != nil {
			t.Fatalf("applyTemplate() error = %v", err)
		}
		if scene.Name != "page" || len(scene.Statics) != 0 || scene.Player.Radius == 0 {
			t.Errorf("unexpected scene %+v", scene)
		}
	})
}
