package conf

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"prism/log"
)

// EnvFile is read before the process environment, values already set in the environment win.
const EnvFile = "prism.env"

// default allocation
const (
	defaultChainId          = 11011
	defaultServerAddr       = ":3000"
	defaultCollection       = "0x0000000000000000000000000000000000000000"
	defaultMintPriceWei     = "1000000000000000" // 0.001 ether
	defaultColorContract    = "0x7Bc1C072742D8391817EB4Eb2317F98dc72C61dB"
	defaultIndexerUrl       = "https://base-mainnet.g.alchemy.com"
	defaultIndexerPageSize  = 100
	defaultFallbackAddress  = "0xAD7c065112dCF8891b10F8e70eF74F5E4A168Fa4"
	defaultIpfsUploadUrl    = "https://ipfs-uploader.zora.co"
	defaultIpfsGateway      = "https://magic.decentralized-content.com"
	defaultGenAIModel       = "gemini-2.5-flash-image"
	defaultLogLevel         = "info"
	defaultReadTimeout      = 10 * time.Second
	defaultUploadTimeout    = 60 * time.Second
	defaultFetchTimeout     = 30 * time.Second
	defaultSubmitTimeout    = 30 * time.Second
	defaultConfirmTimeout   = 3 * time.Minute
	defaultGenerateTimeout  = 2 * time.Minute
	defaultReceiptInterval  = 2 * time.Second
	defaultRetryBackoff     = 500 * time.Millisecond
	defaultNonceLockTimeout = 30 * time.Second
)

// Config is the process-wide configuration, built once by Load and passed to every constructor.
type Config struct {
	ChainId     int64
	ChainName   string
	ChainUrl    string //Chain node address
	ExplorerUrl string
	HexKey      string //Signing key of the relayer account, hex with or without 0x
	ServerAddr  string

	CollectionAddress string   //Prism collection the mint is sent to
	MintPrice         *big.Int //Value attached to every mint transaction (unit: wei)

	ColorContract   string //Color collection whose owners receive royalties
	IndexerUrl      string
	AlchemyApiKey   string
	IndexerPageSize int
	FallbackAddress string

	IpfsUploadUrl string
	IpfsGateway   string

	GenAIApiKey string
	GenAIModel  string

	MysqlDsn string
	ResetDB  bool
	RedisUrl string

	LogLevel    string
	AlertToken  string
	AlertChatId int64

	ReadTimeout      time.Duration //NFT index and chain reads
	UploadTimeout    time.Duration
	FetchTimeout     time.Duration //Downloading the generated image
	SubmitTimeout    time.Duration
	ConfirmTimeout   time.Duration
	GenerateTimeout  time.Duration
	ReceiptInterval  time.Duration
	RetryBackoff     time.Duration
	NonceLockTimeout time.Duration
}

// Load reads prism.env (if present) and the environment on top of the defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(EnvFile); err != nil {
		log.Infof("Failed to load environment variables from %s file, %v", EnvFile, err)
	}
	return fromEnv(os.Getenv)
}

func fromEnv(getenv func(string) string) (*Config, error) {
	c := &Config{
		ChainId:           defaultChainId,
		ServerAddr:        defaultServerAddr,
		CollectionAddress: defaultCollection,
		ColorContract:     defaultColorContract,
		IndexerUrl:        defaultIndexerUrl,
		IndexerPageSize:   defaultIndexerPageSize,
		FallbackAddress:   defaultFallbackAddress,
		IpfsUploadUrl:     defaultIpfsUploadUrl,
		IpfsGateway:       defaultIpfsGateway,
		GenAIModel:        defaultGenAIModel,
		LogLevel:          defaultLogLevel,
		ReadTimeout:       defaultReadTimeout,
		UploadTimeout:     defaultUploadTimeout,
		FetchTimeout:      defaultFetchTimeout,
		SubmitTimeout:     defaultSubmitTimeout,
		ConfirmTimeout:    defaultConfirmTimeout,
		GenerateTimeout:   defaultGenerateTimeout,
		ReceiptInterval:   defaultReceiptInterval,
		RetryBackoff:      defaultRetryBackoff,
		NonceLockTimeout:  defaultNonceLockTimeout,
	}
	p := &parser{getenv: getenv}

	p.int64("CHAIN_ID", &c.ChainId)
	p.str("HEX_KEY", &c.HexKey)
	p.str("SERVER_ADDR", &c.ServerAddr)
	p.str("COLLECTION_ADDRESS", &c.CollectionAddress)
	mintPrice := defaultMintPriceWei
	p.str("MINT_PRICE_WEI", &mintPrice)
	p.str("COLOR_CONTRACT", &c.ColorContract)
	p.str("INDEXER_URL", &c.IndexerUrl)
	p.str("ALCHEMY_API_KEY", &c.AlchemyApiKey)
	p.int("INDEXER_PAGE_SIZE", &c.IndexerPageSize)
	p.str("FALLBACK_ADDRESS", &c.FallbackAddress)
	p.str("IPFS_UPLOAD_URL", &c.IpfsUploadUrl)
	p.str("IPFS_GATEWAY", &c.IpfsGateway)
	p.str("GENAI_API_KEY", &c.GenAIApiKey)
	p.str("GENAI_MODEL", &c.GenAIModel)
	p.str("MYSQL_DSN", &c.MysqlDsn)
	p.bool("RESET_DB", &c.ResetDB)
	p.str("REDIS_URL", &c.RedisUrl)
	p.str("LOG_LEVEL", &c.LogLevel)
	p.str("ALERT_BOT_TOKEN", &c.AlertToken)
	p.int64("ALERT_CHAT_ID", &c.AlertChatId)
	p.duration("READ_TIMEOUT", &c.ReadTimeout)
	p.duration("UPLOAD_TIMEOUT", &c.UploadTimeout)
	p.duration("FETCH_TIMEOUT", &c.FetchTimeout)
	p.duration("SUBMIT_TIMEOUT", &c.SubmitTimeout)
	p.duration("CONFIRM_TIMEOUT", &c.ConfirmTimeout)
	p.duration("GENERATE_TIMEOUT", &c.GenerateTimeout)
	p.duration("RECEIPT_INTERVAL", &c.ReceiptInterval)
	p.duration("RETRY_BACKOFF", &c.RetryBackoff)
	p.duration("NONCE_LOCK_TIMEOUT", &c.NonceLockTimeout)
	if p.err != nil {
		return nil, p.err
	}

	// Blockchain network configuration
	network := networks[c.ChainId]
	if network == nil {
		return nil, fmt.Errorf("unsupported chainId: %v", c.ChainId)
	}
	c.ChainName, c.ChainUrl, c.ExplorerUrl = network.Name, network.Url, network.Explorer
	if rpcUrl := getenv("RPC_URL"); rpcUrl != "" {
		c.ChainUrl = rpcUrl
	}

	var ok bool
	c.MintPrice, ok = new(big.Int).SetString(mintPrice, 0)
	if !ok || c.MintPrice.Sign() < 0 {
		return nil, fmt.Errorf("invalid MINT_PRICE_WEI: %q", mintPrice)
	}
	if c.IndexerPageSize < 1 || c.IndexerPageSize > 100 {
		return nil, fmt.Errorf("INDEXER_PAGE_SIZE must be within 1..100, got %d", c.IndexerPageSize)
	}
	c.IndexerUrl = strings.TrimSuffix(c.IndexerUrl, "/")
	c.IpfsUploadUrl = strings.TrimSuffix(c.IpfsUploadUrl, "/")
	c.IpfsGateway = strings.TrimSuffix(c.IpfsGateway, "/")
	return c, nil
}

// ExplorerTxUrl links a transaction on the configured chain's block explorer.
func (c *Config) ExplorerTxUrl(hash string) string {
	return c.ExplorerUrl + "/tx/" + hash
}

// parser keeps the first error so the caller checks once.
type parser struct {
	getenv func(string) string
	err    error
}

func (p *parser) str(key string, dst *string) {
	if v := p.getenv(key); v != "" {
		*dst = v
	}
}

func (p *parser) bool(key string, dst *bool) {
	if v := p.getenv(key); v != "" {
		*dst = v == "true"
	}
}

func (p *parser) int64(key string, dst *int64) {
	v := p.getenv(key)
	if v == "" || p.err != nil {
		return
	}
	n, err := strconv.ParseInt(v, 0, 64)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
		return
	}
	*dst = n
}

func (p *parser) int(key string, dst *int) {
	n := int64(*dst)
	p.int64(key, &n)
	*dst = int(n)
}

func (p *parser) duration(key string, dst *time.Duration) {
	v := p.getenv(key)
	if v == "" || p.err != nil {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		p.err = fmt.Errorf("invalid %s: %w", key, err)
		return
	}
	*dst = d
}
