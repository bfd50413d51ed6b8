package cmd

import (
	_ "simpleclaw-keeper/cmd/docker"
	_ "simpleclaw-keeper/cmd/metrics"
	_ "simpleclaw-keeper/cmd/misc"
	_ "simpleclaw-keeper/cmd/remote"
	_ "simpleclaw-keeper/cmd/root"
	_ "simpleclaw-keeper/cmd/server"
	_ "simpleclaw-keeper/cmd/setup"
	_ "simpleclaw-keeper/cmd/stack"
	_ "simpleclaw-keeper/cmd/telegram"
)
