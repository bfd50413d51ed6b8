package artifact

import (
	"bytes"
	"text/template"
)

const dockerfileContent = `FROM ghcr.io/openclaw/openclaw:latest

USER root

RUN apt-get update -qq && \
    apt-get install -y -qq --no-install-recommends \
    wget gnupg2 ca-certificates \
    fonts-liberation libasound2 libatk-bridge2.0-0 libatk1.0-0 \
    libcups2 libdbus-1-3 libdrm2 libgbm1 libgtk-3-0 \
    libnspr4 libnss3 libx11-xcb1 libxcomposite1 libxdamage1 \
    libxrandr2 xdg-utils libxss1 libgconf-2-4 \
    libpango-1.0-0 libpangocairo-1.0-0 libcairo2 && \
    wget -q -O - https://dl.google.com/linux/linux_signing_key.pub | gpg --dearmor -o /usr/share/keyrings/google-chrome.gpg && \
    echo "deb [arch=amd64 signed-by=/usr/share/keyrings/google-chrome.gpg] http://dl.google.com/linux/chrome/deb/ stable main" > /etc/apt/sources.list.d/google-chrome.list && \
    apt-get update -qq && \
    apt-get install -y -qq --no-install-recommends google-chrome-stable && \
    apt-get clean && rm -rf /var/lib/apt/lists/*

# Redirect Brave Search API to local SearXNG adapter
RUN sed -i 's|https://api.search.brave.com/res/v1/web/search|http://searxng-adapter:3000/res/v1/web/search|g' /app/dist/*.js

USER node
`

// The desktop stack runs without a separate headless browser container.
const composeContent = `services:
  openclaw:
    build: .
    image: openclaw-chrome:latest
    container_name: openclaw
    restart: unless-stopped
    shm_size: 2g
    env_file:
      - .env
    volumes:
      - ./openclaw-config.yaml:/app/config.yaml
      - ./data:/app/data
      - config:/home/node/.openclaw
    depends_on:
      - searxng
    ports:
      - "18789:18789"

  searxng:
    image: docker.io/searxng/searxng:latest
    container_name: searxng
    restart: unless-stopped
    volumes:
      - ./searxng:/etc/searxng:rw
    environment:
      - SEARXNG_BASE_URL=http://searxng:8080

  searxng-adapter:
    image: openclaw-chrome:latest
    container_name: searxng-adapter
    restart: unless-stopped
    user: node
    volumes:
      - ./searxng-adapter.js:/tmp/adapter.js:ro
    entrypoint: ["node", "/tmp/adapter.js"]
    depends_on:
      - searxng
      - openclaw

  valkey:
    image: docker.io/valkey/valkey:8-alpine
    container_name: searxng-redis
    restart: unless-stopped
    command: valkey-server --save 30 1 --loglevel warning

volumes:
  config:
    name: openclaw_desktop_config
`

const envTemplate = `OPENROUTER_API_KEY={{.OpenRouterKey}}
TELEGRAM_BOT_TOKEN={{.BotToken}}
OPENCLAW_GATEWAY_TOKEN={{.GatewayToken}}
BRAVE_API_KEY=local-searxng
LOG_LEVEL=info
`

const agentConfigTemplate = `provider: openrouter
model: {{.Model}}
api_key: {{.OpenRouterKey}}

gateway:
  mode: local
  auth:
    type: token
    token: {{.GatewayToken}}

channels:
  telegram:
    enabled: true
    botToken: {{.BotToken}}
    dmPolicy: open
    allowFrom: ["*"]
    groupPolicy: allowlist
    streamMode: partial

limits:
  max_tokens_per_message: 4096
  max_context_messages: 30
`

const searxngSettingsTemplate = `use_default_settings: true

general:
  instance_name: "OpenClaw Search"
  debug: false

search:
  safe_search: 0
  autocomplete: ""
  formats:
    - html
    - json

server:
  bind_address: "0.0.0.0"
  port: 8080
  secret_key: "{{.SecretKey}}"
  limiter: false
  image_proxy: false

redis:
  url: "redis://searxng-redis:6379/0"
`

const searxngAdapterContent = `const http = require('http');
const SEARXNG = 'http://searxng:8080/search';

http.createServer(async (req, res) => {
  try {
    const url = new URL(req.url, 'http://localhost:3000');
    const q = url.searchParams.get('q') || '';
    const count = parseInt(url.searchParams.get('count') || '5', 10);
    const lang = url.searchParams.get('search_lang') || '';
    const searxParams = new URLSearchParams({ q, format: 'json' });
    if (lang) searxParams.set('language', lang);

    const resp = await fetch(` + "`${SEARXNG}?${searxParams}`" + `);
    const data = await resp.json();

    const results = (data.results || []).slice(0, count).map(r => ({
      title: r.title || '',
      url: r.url || '',
      description: r.content || '',
      age: r.publishedDate || undefined,
    }));

    res.writeHead(200, { 'Content-Type': 'application/json' });
    res.end(JSON.stringify({ web: { results } }));
  } catch (e) {
    res.writeHead(502, { 'Content-Type': 'application/json' });
    res.end(JSON.stringify({ web: { results: [] } }));
  }
}).listen(3000, '0.0.0.0');
`

var (
	envTmpl         = template.Must(template.New(EnvFile).Parse(envTemplate))
	agentConfigTmpl = template.Must(template.New(AgentConfigFile).Parse(agentConfigTemplate))
	searxngTmpl     = template.Must(template.New(SearxngSettingsFile).Parse(searxngSettingsTemplate))
)

type renderData struct {
	OpenRouterKey string
	BotToken      string
	GatewayToken  string
	Model         string
	SecretKey     string
}

func render(tmpl *template.Template, data renderData) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
