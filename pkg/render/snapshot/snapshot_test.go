package snapshot

import (
	"testing"

	"github.com/matzehuels/radialtext/pkg/radial"
	"github.com/matzehuels/radialtext/pkg/scene"
)

func liveScene() *scene.Element {
	cfg := radial.Normalize(radial.Settings{TextLines: "a\nb\nc", BgColor: "#fff"})
	root := radial.Build(cfg)
	root.SetAttr("viewBox", "0 0 800 600")
	root.Style.Set("width", "120px")
	root.Style.Set("height", "80px")
	root.Style.Set("margin", "-40px 0 0 -60px")
	root.Find(radial.GroupClass).SetAttr("transform", "translate(400,300) scale(0.5)")
	return root
}

func TestBuild(t *testing.T) {
	live := liveScene()
	snap := Build(live, Inherited{FontFamily: "Go, sans-serif"})

	group := snap.Find(radial.GroupClass)
	if _, ok := group.LookupAttr("transform"); ok {
		t.Error("snapshot should not keep the preview transform")
	}
	for _, prop := range []string{"width", "height", "margin"} {
		if got := snap.Style.Get(prop); got != "" {
			t.Errorf("snapshot style %s = %q, want cleared", prop, got)
		}
	}
	if got := snap.Style.Get("font-family"); got != "Go, sans-serif" {
		t.Errorf("font-family = %q", got)
	}
	if got := snap.Style.Get("background"); got != "#fff" {
		t.Errorf("background = %q, want kept", got)
	}
	if got := len(snap.FindAll(radial.TextClass)); got != 3 {
		t.Errorf("text count = %d, want 3", got)
	}
}

func TestBuildDoesNotTouchLive(t *testing.T) {
	live := liveScene()
	before, err := scene.MarshalString(live)
	if err != nil {
		t.Fatal(err)
	}

	snap := Build(live, Inherited{FontFamily: "Go"})
	snap.FindAll(radial.TextClass)[0].Text = "changed"

	after, err := scene.MarshalString(live)
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("live scene changed:\nbefore %s\nafter  %s", before, after)
	}
}

func TestBuildEdgeCases(t *testing.T) {
	if Build(nil, Inherited{}) != nil {
		t.Error("Build(nil) should return nil")
	}

	// A scene without a text group is copied as is
	bare := scene.New("svg")
	bare.Style.Set("width", "10px")
	snap := Build(bare, Inherited{})
	if snap == bare {
		t.Error("Build should return a copy")
	}
	if snap.Style.Len() != 0 {
		t.Errorf("style = %q, want empty", snap.Style.String())
	}
}
