package scene_test

import (
	"encoding/json"
	"fmt"

	"github.com/matzehuels/figmajson/pkg/scene"
)

func ExampleNode_MarshalJSON() {
	n := scene.NewNode(scene.TypeText)
	n.Set("name", "Title")
	n.Set("fontName", scene.FontName{Family: "Inter", Style: "Bold"})
	n.Set("fontSize", scene.Mixed)

	data, _ := json.Marshal(n)
	fmt.Println(string(data))
	// Output:
	// {"fontName":{"family":"Inter","style":"Bold"},"fontSize":"__Symbol(figma.mixed)__","name":"Title","type":"TEXT"}
}

func ExampleEncodeFont() {
	s, _ := scene.EncodeFont(scene.FontName{Family: "Inter", Style: "Semi Bold"})
	f, _ := scene.DecodeFont(s)
	fmt.Println(s)
	fmt.Println(f.Family, "/", f.Style)
	// Output:
	// Inter|Semi Bold
	// Inter / Semi Bold
}
