package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-editor/internal/drag"
	"github.com/jonathan/resume-editor/internal/observability"
	"github.com/jonathan/resume-editor/internal/schemas"
	"github.com/jonathan/resume-editor/internal/sections"
	"github.com/jonathan/resume-editor/internal/types"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "Inspect and edit resume section documents",
	Long:  `Work with {"sections": [...]} documents: validate them, add sections and reorder them.`,
}

var sectionsValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a section document against the schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsValidate,
}

var sectionsShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print an outline of a section document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsShow,
}

var sectionsAddCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add a section and print the updated document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionsAdd,
}

var sectionsReorderCmd = &cobra.Command{
	Use:   "reorder <file>",
	Short: "Move a section and print the updated document",
	Long: `Move a section with --from/--to, or replay keyboard input with --keys.

--keys takes a comma separated list of up, down, left, right, space, enter and esc, driving
the same keyboard reordering as the editor: arrows move focus, space or enter picks the
focused section up, arrows move it, space or enter drops it and esc cancels.`,
	Example: "  resume_editor sections reorder resume.json --keys down,space,up,enter",
	Args:    cobra.ExactArgs(1),
	RunE:  runSectionsReorder,
}

var (
	sectionsAddType     string
	sectionsAddPosition string
	sectionsReorderFrom int
	sectionsReorderTo   int
	sectionsReorderKeys string
	sectionsWrite       bool
)

func init() {
	sectionsAddCmd.Flags().StringVarP(&sectionsAddType, "type", "t", "", "Section type, e.g. text, experience, bulleted-list (required)")
	sectionsAddCmd.Flags().StringVarP(&sectionsAddPosition, "position", "p", "top", `Where to insert: "top", "bottom" or an index`)
	if err := sectionsAddCmd.MarkFlagRequired("type"); err != nil {
		panic(fmt.Sprintf("failed to mark type flag as required: %v", err))
	}

	sectionsReorderCmd.Flags().IntVar(&sectionsReorderFrom, "from", 0, "Index of the section to move")
	sectionsReorderCmd.Flags().IntVar(&sectionsReorderTo, "to", 0, "Index to move it to")
	sectionsReorderCmd.Flags().StringVar(&sectionsReorderKeys, "keys", "", "Comma separated key presses to replay instead of --from/--to")
	sectionsReorderCmd.MarkFlagsMutuallyExclusive("keys", "from")
	sectionsReorderCmd.MarkFlagsMutuallyExclusive("keys", "to")

	for _, c := range []*cobra.Command{sectionsAddCmd, sectionsReorderCmd} {
		c.Flags().BoolVarP(&sectionsWrite, "write", "w", false, "Write the result back to the file instead of stdout")
	}

	sectionsCmd.AddCommand(sectionsValidateCmd, sectionsShowCmd, sectionsAddCmd, sectionsReorderCmd)
	rootCmd.AddCommand(sectionsCmd)
}

func runSectionsValidate(cmd *cobra.Command, args []string) error {
	list, err := readSections(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: valid, %d sections\n", args[0], len(list))
	for i, s := range list {
		if count, ok := types.ItemCount(s.Content); ok {
			fmt.Fprintf(out, "  %d. %s (%s, %d items)\n", i, s.Name, s.Type, count)
			continue
		}
		fmt.Fprintf(out, "  %d. %s (%s)\n", i, s.Name, s.Type)
	}
	return nil
}

func runSectionsShow(cmd *cobra.Command, args []string) error {
	list, err := readSections(args[0])
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSections(list)
	return nil
}

func runSectionsAdd(cmd *cobra.Command, args []string) error {
	position, err := parsePosition(sectionsAddPosition)
	if err != nil {
		return err
	}

	return editSections(cmd, args[0], func(store *sections.Store) error {
		store.AddSection(types.SectionType(sectionsAddType), position)
		return nil
	})
}

func runSectionsReorder(cmd *cobra.Command, args []string) error {
	if sectionsReorderKeys != "" {
		keys, err := parseKeys(sectionsReorderKeys)
		if err != nil {
			return err
		}
		return editSections(cmd, args[0], func(store *sections.Store) error {
			replayKeys(store, keys)
			return nil
		})
	}

	return editSections(cmd, args[0], func(store *sections.Store) error {
		if sectionsReorderFrom == sectionsReorderTo {
			return nil
		}
		if !store.ReorderSections(sectionsReorderFrom, sectionsReorderTo) {
			return fmt.Errorf("cannot move section %d to %d: document has %d sections",
				sectionsReorderFrom, sectionsReorderTo, store.Len())
		}
		return nil
	})
}

// replayKeys feeds keys through a keyboard sensor over the section list. Drops reorder the store.
func replayKeys(store *sections.Store, keys []*tcell.EventKey) {
	var coordinator *drag.Coordinator[types.Section]
	coordinator = drag.New("sections", store.Sections(), func(oldIndex, newIndex int) {
		store.ReorderSections(oldIndex, newIndex)
		coordinator.SetItems(store.Sections())
	})
	sensor := drag.NewKeyboardSensor(coordinator)
	for _, ev := range keys {
		sensor.HandleKey(ev)
	}
}

var keyNames = map[string]*tcell.EventKey{
	"up":    tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone),
	"down":  tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone),
	"left":  tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone),
	"right": tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone),
	"space": tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone),
	"enter": tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
	"esc":   tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
}

func parseKeys(value string) ([]*tcell.EventKey, error) {
	var keys []*tcell.EventKey
	for _, name := range strings.Split(value, ",") {
		ev, ok := keyNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown key %q: want up, down, left, right, space, enter or esc", name)
		}
		keys = append(keys, ev)
	}
	return keys, nil
}

// editSections loads path into a store, applies edit and writes the result to stdout
// or, with --write, back to path.
func editSections(cmd *cobra.Command, path string, edit func(*sections.Store) error) error {
	_, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	list, err := readSections(path)
	if err != nil {
		return err
	}
	store := sections.NewStore(list, sections.Options{Logger: logger})
	if err := edit(store); err != nil {
		return err
	}

	doc, err := json.MarshalIndent(schemas.SectionsDocument{Sections: store.Sections()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode sections: %w", err)
	}
	doc = append(doc, '\n')

	if sectionsWrite {
		if err := os.WriteFile(path, doc, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}
	_, err = cmd.OutOrStdout().Write(doc)
	return err
}

func readSections(path string) ([]types.Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	list, err := schemas.DecodeSections(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

func parsePosition(value string) (types.Position, error) {
	switch value {
	case "", "top":
		return types.PositionTop, nil
	case "bottom":
		return types.PositionBottom, nil
	}
	index, err := strconv.Atoi(value)
	if err != nil {
		return types.Position{}, fmt.Errorf("invalid position %q: want top, bottom or an index", value)
	}
	return types.PositionAt(index), nil
}
