package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Accept key.Binding
	Focus  key.Binding
	Blur   key.Binding
	Submit key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Accept: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "use suggestion"),
		),
		// Tab also focuses when there is no suggestion to accept; Accept is
		// matched first.
		Focus: key.NewBinding(
			key.WithKeys("enter", "i", "tab"),
			key.WithHelp("enter", "write a prompt"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave field"),
			key.WithDisabled(),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "send"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// sync enables the bindings that apply to the current field state.
func (k *keyMap) sync(focused, canAccept, canSubmit bool) {
	k.Accept.SetEnabled(!focused && canAccept)
	k.Focus.SetEnabled(!focused)
	k.Blur.SetEnabled(focused)
	k.Submit.SetEnabled(canSubmit)
	k.Help.SetEnabled(!focused)
	if focused {
		k.Quit.SetKeys("ctrl+c")
		k.Quit.SetHelp("ctrl+c", "quit")
	} else {
		k.Quit.SetKeys("ctrl+c", "q")
		k.Quit.SetHelp("q", "quit")
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Accept, k.Focus, k.Blur, k.Submit, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Accept, k.Focus, k.Blur},
		{k.Submit, k.Help, k.Quit},
	}
}
