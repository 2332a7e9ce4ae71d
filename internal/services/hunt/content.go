package hunt

import "github.com/shadowhunt/shadowhunt-go/internal/model"

// Rooms returns the event's room sequence. Order matters: rooms unlock
// front to back and the final room has no exit door.
func Rooms() []model.Room {
	return []model.Room{
		{
			Name:         "The Entrance Hall",
			Background:   "/assets/bg.jpg",
			Objects:      []string{"Cross", "Candlestick", "Oil Lamp"},
			FakeObjects:  []string{"Vase", "Rake", "Telepfone", "Old frame", "Bulb1", "Bulb2"},
			DoorPosition: &model.Vec3{X: 0, Y: -50, Z: -250},
			DoorRotation: &model.Vec3{X: 0, Y: 0, Z: 0},
		},
		{
			Name:         "The Living Room",
			Background:   "/assets/bg8.jpg",
			Objects:      []string{"Spider", "Wig"},
			FakeObjects:  []string{"Group", "Teapot", "Wood"},
			DoorPosition: &model.Vec3{X: 200, Y: -80, Z: -200},
			DoorRotation: &model.Vec3{X: 0, Y: -0.5, Z: 0},
		},
		{
			Name:         "The Study",
			Background:   "/assets/bg9.jpg",
			Objects:      []string{"Clock", "Lamp", "Specs"},
			FakeObjects:  []string{"Bucket", "Book"},
			DoorPosition: &model.Vec3{X: -150, Y: -60, Z: -220},
			DoorRotation: &model.Vec3{X: 0, Y: 0.3, Z: 0},
		},
		{
			Name:        "The Attic",
			Background:  "/assets/bg4.jpg",
			Objects:     []string{"Haunted Painting", "Hour Glass", "Key"},
			FakeObjects: []string{"Old clock"},
		},
	}
}

// clues maps object names to the riddle shown while that object is the
// current target. Decoys have clues too; they surface in content tooling,
// never in play.
var clues = map[string]string{
	"Candlestick":      "I shrink as I stand, yet I never move. I weep without sorrow, yet my tears improve. Shadows flee when I whisper my light. What am I, that burns but has no fight?",
	"Vase":             "Hollow throat of clay, once sipped the scent of dead flowers.",
	"Rake":             "Iron fingers by the hearth, forever combing ashes for bones.",
	"Telepfone":        "A distant voice entombed in wires, ringing after the caller is gone.",
	"Oil Lamp":         "Once I guided souls through night. Now I whisper without light.",
	"Cross":            "Worn on necks or on walls I'm seen. What am I that protects from the unseen?",
	"Bulb1":            "Glass vessel of forgotten light, once bright now dim in endless night.",
	"Bulb2":            "Hollow sphere that held the glow, now dark where light used to flow.",
	"Horse":            "Silent steed of wood, gallops only in memories.",
	"Spider":           "I believe with great power comes... I guess we all know it.",
	"Group":            "Faces gather but never speak, captured mid-whisper.",
	"Teapot":           "Porcelain throat pours warmth, now cold as the grave.",
	"Wood":             "Splinters of yesterday's forest, sleeping by the fire's ghost.",
	"Wig":              "If shabby they are called jhaadu (broom); most of us know it as Kala Jaadu (Black Magic).",
	"Clock":            "I've seen them live, I've seen them die. My hands still move, though none can hear. Seek me where the ghosts appear.",
	"Bucket":           "A mouth with a metal grin, thirsty for the well's secrets.",
	"Book":             "Leather skin and paper bones, whispering learned curses.",
	"Lamp":             "A blind eye on the ceiling, once blinking with light.",
	"Specs":            "Potter stole something from Gandhi, guess what?",
	"Key":              "I became useless when Alohomora entered the castle.",
	"Hour Glass":       "Time is ticking, go find soon; once upside down it's game over for you.",
	"Haunted Painting": "I hang where silence tends to creep. Eyes that watch while others sleep.",
	"Old clock":        "An elder of ticking halls, hoarding minutes like gold.",
	"Old frame":        "A wooden ring for ghosts, holding what is missing.",
	"Frame":            "Gilded teeth bite the wall, refusing to let go of memories.",
	"Cup":              "A small chalice of warmth, now sipping only dust.",
	"Lock":             "Iron secret-keeper, smiling without a key.",
}

// ClueFor returns the riddle for an object, with a plain fallback when no
// riddle was authored
func ClueFor(name string) string {
	if clue, ok := clues[name]; ok {
		return clue
	}
	return "Find: " + name
}

// Items returns every placeable scene item. Names repeat where the same
// prop appears in more than one spot; hit-testing reports the name, so any
// copy satisfies the clue.
func Items() []model.SceneItem {
	return []model.SceneItem{
		{Name: "Candlestick", Image: "/assets/items/candlestick.png", Width: 86, Height: 121, Position: model.Vec3{X: -170, Y: -7, Z: 230}, Rotation: model.Vec3{X: 0, Y: -3, Z: -0.05}, Scale: model.Vec3{X: 0.6, Y: 0.45, Z: 0.6}},
		{Name: "Vase", Image: "/assets/items/vase.png", Width: 113, Height: 100, Position: model.Vec3{X: -130, Y: -180, Z: 280}, Rotation: model.Vec3{X: 0.2, Y: -0.15, Z: 0.12}, Scale: model.Vec3{X: 0.7, Y: 0.8, Z: 0.8}},
		{Name: "Rake", Image: "/assets/items/fireplace_tools.png", Width: 146, Height: 293, Position: model.Vec3{X: -20, Y: -140, Z: 180}, Rotation: model.Vec3{X: 0.2, Y: -0.15, Z: 0}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Telepfone", Image: "/assets/items/telepfone.png", Width: 142, Height: 212, Position: model.Vec3{X: 40, Y: -140, Z: 130}, Rotation: model.Vec3{X: 0.2, Y: 3.2, Z: 0}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Oil Lamp", Image: "/assets/items/oil_lamp.png", Width: 86, Height: 203, Position: model.Vec3{X: 110, Y: -130, Z: 130}, Rotation: model.Vec3{X: 1.1, Y: 1.4, Z: -0.9}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Cross", Image: "/assets/items/cross.jpg", Width: 80, Height: 120, Position: model.Vec3{X: -300, Y: -90, Z: 300}, Rotation: model.Vec3{X: 0.1, Y: -7.5, Z: 0.45}, Scale: model.Vec3{X: 0.4, Y: 0.4, Z: 0.4}},
		{Name: "Bulb1", Image: "/assets/items/bulb1.png", Width: 60, Height: 80, Position: model.Vec3{X: 140, Y: -110, Z: 140}, Rotation: model.Vec3{X: 1.0, Y: 1.5, Z: -0.8}, Scale: model.Vec3{X: 0.35, Y: 0.35, Z: 0.35}},
		{Name: "Bulb1", Image: "/assets/items/bulb1.png", Width: 60, Height: 80, Position: model.Vec3{X: -140, Y: 10, Z: 240}, Rotation: model.Vec3{X: 0.1, Y: -2.8, Z: -0.1}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Bulb2", Image: "/assets/items/bulb2.png", Width: 60, Height: 80, Position: model.Vec3{X: 80, Y: -150, Z: 110}, Rotation: model.Vec3{X: 1.2, Y: 1.3, Z: -1.0}, Scale: model.Vec3{X: 0.35, Y: 0.35, Z: 0.35}},
		{Name: "Bulb2", Image: "/assets/items/bulb2.png", Width: 60, Height: 80, Position: model.Vec3{X: -200, Y: -20, Z: 220}, Rotation: model.Vec3{X: 0.2, Y: -3.1, Z: 0.0}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Wig", Image: "/assets/items/wig.png", Width: 120, Height: 100, Position: model.Vec3{X: -180, Y: -180, Z: 80}, Rotation: model.Vec3{X: -0.2, Y: 1.9, Z: 0.35}, Scale: model.Vec3{X: 0.5, Y: 0.5, Z: 0.6}},
		{Name: "Spider", Image: "/assets/items/spider_web.png", Width: 92, Height: 65, Position: model.Vec3{X: -320, Y: 75, Z: 70}, Rotation: model.Vec3{X: -0.2, Y: 1.9, Z: 0.35}, Scale: model.Vec3{X: 0.5, Y: 0.5, Z: 0.6}},
		{Name: "Group", Image: "/assets/items/group.png", Width: 175, Height: 157, Position: model.Vec3{X: -190, Y: -80, Z: 5}, Rotation: model.Vec3{X: -0.2, Y: 1.5, Z: 0.16}, Scale: model.Vec3{X: 0.32, Y: 0.32, Z: 0.32}},
		{Name: "Teapot", Image: "/assets/items/teapot.png", Width: 109, Height: 146, Position: model.Vec3{X: -130, Y: -80, Z: -10}, Rotation: model.Vec3{X: -0.2, Y: 1.5, Z: 0.16}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Wood", Image: "/assets/items/wood.png", Width: 395, Height: 197, Position: model.Vec3{X: -210, Y: -205, Z: 230}, Rotation: model.Vec3{X: 0.9, Y: -3.7, Z: -0.6}, Scale: model.Vec3{X: 0.3, Y: 0.3, Z: 0.3}},
		{Name: "Clock", Image: "/assets/items/clock.png", Width: 43, Height: 44, Position: model.Vec3{X: -360, Y: -205, Z: 280}, Rotation: model.Vec3{X: 0.9, Y: -3.7, Z: -0.6}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}},
		{Name: "Bucket", Image: "/assets/items/bucket.png", Width: 182, Height: 228, Position: model.Vec3{X: 200, Y: -210, Z: 30}, Rotation: model.Vec3{X: -0.1, Y: -1.5, Z: -0.2}, Scale: model.Vec3{X: 0.45, Y: 0.5, Z: 0.2}},
		{Name: "Book", Image: "/assets/items/book.png", Width: 135, Height: 53, Position: model.Vec3{X: -300, Y: -120, Z: -240}, Rotation: model.Vec3{X: -0.4, Y: 0.4, Z: 0.3}, Scale: model.Vec3{X: 0.5, Y: 0.5, Z: 0.5}},
		{Name: "Lamp", Image: "/assets/items/lamp.png", Width: 1311, Height: 911, Position: model.Vec3{X: -215, Y: -30, Z: -192}, Rotation: model.Vec3{X: -0.3, Y: 0.3, Z: 0.14}, Scale: model.Vec3{X: 0.07, Y: 0.07, Z: 0.07}},
		{Name: "Specs", Image: "/assets/items/brokenspecs.png", Width: 115, Height: 118, Position: model.Vec3{X: 420, Y: -225, Z: -200}, Rotation: model.Vec3{X: 0, Y: -0.7, Z: 0}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}},
		{Name: "Key", Image: "/assets/items/key.png", Width: 30, Height: 30, Position: model.Vec3{X: 110, Y: 100, Z: -190}, Rotation: model.Vec3{X: 0, Y: 0, Z: 0}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}},
		{Name: "Hour Glass", Image: "/assets/items/ball.png", Width: 60, Height: 60, Position: model.Vec3{X: 180, Y: -180, Z: 220}, Rotation: model.Vec3{X: 0.3, Y: 0.7, Z: 0}, Scale: model.Vec3{X: 1.5, Y: 1.5, Z: 1.5}},
		{Name: "Haunted Painting", Image: "/assets/items/painting.jpg", Width: 461, Height: 345, Position: model.Vec3{X: -90, Y: -3, Z: -190}, Rotation: model.Vec3{X: 0, Y: -0.5, Z: -0.01}, Scale: model.Vec3{X: 0.1, Y: 0.1, Z: 0.1}},
		{Name: "Old clock", Image: "/assets/items/clock_old.png", Width: 40, Height: 40, Position: model.Vec3{X: 105, Y: -35, Z: -210}, Rotation: model.Vec3{X: 0, Y: -0.2, Z: 0}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}},
		{Name: "Old frame", Image: "/assets/items/stew.png", Width: 40, Height: 40, Position: model.Vec3{X: 250, Y: -40, Z: -200}, Rotation: model.Vec3{X: 0, Y: -0.2, Z: 0}, Scale: model.Vec3{X: 1, Y: 1, Z: 1}},
	}
}
